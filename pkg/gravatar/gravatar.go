// Package gravatar derives profile image URLs from email addresses using
// the gravatar convention (md5 of the normalized address).
package gravatar

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const baseURL = "https://www.gravatar.com/avatar"

// Hash returns the gravatar hash for an email address: md5 of the trimmed,
// lowercased address, hex encoded.
func Hash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

// URL returns the avatar URL for an email, falling back to a generated
// identicon when the address has no gravatar.
func URL(email string, size int) string {
	return fmt.Sprintf("%s/%s?s=%d&d=identicon", baseURL, Hash(email), size)
}

// Client checks gravatar for an actual profile image. Lookup failures are
// non-fatal; callers still get a usable identicon URL.
type Client struct {
	http *http.Client
	size int
}

func NewClient(size int) *Client {
	if size <= 0 {
		size = 200
	}
	return &Client{
		http: &http.Client{Timeout: 5 * time.Second},
		size: size,
	}
}

// ImageURL returns the avatar URL for email. It probes gravatar with d=404
// to learn whether a real image exists; on probe failure the identicon URL
// is returned together with the error so the caller can log and continue.
func (c *Client) ImageURL(ctx context.Context, email string) (string, error) {
	url := URL(email, c.size)

	probe := fmt.Sprintf("%s/%s?s=%d&d=404", baseURL, Hash(email), c.size)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, probe, nil)
	if err != nil {
		return url, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return url, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return fmt.Sprintf("%s/%s?s=%d", baseURL, Hash(email), c.size), nil
	}
	return url, nil
}
