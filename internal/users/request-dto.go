package users

// UpdateAvatarRequest carries the new avatar URL for the current user
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" validate:"required,url"`
}
