package users

import (
	"time"

	"github.com/forgemart/forgemart/internal/auth"
)

// User represents a user account. The password hash never serializes into
// responses.
type User struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	RegistrationDate time.Time `json:"registration_date"`
	ProfileImageURL  string    `json:"profile_image_url,omitempty"`
	Role             auth.Role `json:"role"`
}
