package dto

import (
	"github.com/noah-isme/lms-ai-api/internal/models"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
)

// ErrPasswordMismatch is returned when a profile update's confirmation differs.
var ErrPasswordMismatch = appErrors.Clone(appErrors.ErrValidation, "Passwords do not match.")

// CreateUserRequest is the administrator payload for adding a user.
type CreateUserRequest struct {
	Username string      `json:"username" validate:"required"`
	Password string      `json:"password" validate:"required"`
	Role     models.Role `json:"role" validate:"required"`
}

// UpdateUserRequest is the administrator payload for editing a user. Omitted fields and an
// empty password keep the current value.
type UpdateUserRequest struct {
	Username *string      `json:"username,omitempty"`
	Password *string      `json:"password,omitempty"`
	Role     *models.Role `json:"role,omitempty"`
}

// Details converts the request into a partial update.
func (r UpdateUserRequest) Details() models.UserDetails {
	details := models.UserDetails{Username: r.Username, Role: r.Role}
	if r.Password != nil && *r.Password != "" {
		details.Password = r.Password
	}
	return details
}

// UpdateProfileRequest is the self-service profile payload.
type UpdateProfileRequest struct {
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Details diffs the request against the current user. Only a changed username and a
// non-empty password are carried over.
func (r UpdateProfileRequest) Details(current models.User) (models.UserDetails, error) {
	if r.Password != r.ConfirmPassword {
		return models.UserDetails{}, ErrPasswordMismatch
	}
	var details models.UserDetails
	if r.Username != current.Username {
		username := r.Username
		details.Username = &username
	}
	if r.Password != "" {
		password := r.Password
		details.Password = &password
	}
	return details, nil
}
