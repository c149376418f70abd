package models

import "github.com/colisroute/colis/internal/common"

type SignUpRequest struct {
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName,omitempty"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      common.Role `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleAuthRequest struct {
	IDToken string `json:"idToken"`
}

type GoogleRegisterRequest struct {
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName,omitempty"`
	ImageURL  string      `json:"imageUrl,omitempty"`
	Role      common.Role `json:"role"`
}

// AuthResponse is returned by every auth endpoint. For a first-time Google
// sign-in NeedsRoleSelection is set, Token is empty and the profile fields
// are filled instead.
type AuthResponse struct {
	UserID   int64       `json:"userId"`
	UserRole common.Role `json:"userRole"`
	Token    string      `json:"token"`
	Message  string      `json:"message,omitempty"`

	NeedsRoleSelection bool   `json:"needsRoleSelection,omitempty"`
	Email              string `json:"email,omitempty"`
	FirstName          string `json:"firstName,omitempty"`
	LastName           string `json:"lastName,omitempty"`
	ImageURL           string `json:"imageUrl,omitempty"`
}

// GoogleProfile is what a new Google user brings to role selection.
type GoogleProfile struct {
	Email     string
	FirstName string
	LastName  string
	ImageURL  string
}

// Profile extracts the Google profile fields of r.
func (r AuthResponse) Profile() GoogleProfile {
	return GoogleProfile{Email: r.Email, FirstName: r.FirstName, LastName: r.LastName, ImageURL: r.ImageURL}
}
