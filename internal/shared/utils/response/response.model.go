package response

// Envelope is the shape every JSON response uses, success and error alike.
// Data carries the payload on success; Errors carries validation or failure
// detail and both are dropped from the body when empty.
type Envelope struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}
