package models

import (
	"net/mail"
	"strings"
	"time"
)

// Role is the marketplace role of an ApplicationUser
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleBuyer  Role = "buyer"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a role name to a Role
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleFarmer, RoleBuyer, RoleAdmin:
		return r, true
	}
	return "", false
}

// User is a marketplace participant (farmer or buyer) or an administrator
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Role            Role      `json:"role"`
	Specialization  string    `json:"specialization"`
	MainActivity    string    `json:"main_activity"`
	Specializations []string  `json:"specializations"`
	Banned          bool      `json:"banned"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	PasswordHash    string    `json:"-"`
}

// IsAdmin reports whether the user may use the admin dashboard
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserInput is the create/update body of /admin/users
type UserInput struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Password        string   `json:"password"`
	Role            string   `json:"role"`
	Specialization  string   `json:"specialization"`
	MainActivity    string   `json:"main_activity"`
	Specializations []string `json:"specializations"`
	Banned          *bool    `json:"banned"`
}

// Validate normalizes the input in place and reports every invalid field.
// On update (creating=false) an empty password keeps the current one.
func (in *UserInput) Validate(creating bool) error {
	verr := &ValidationError{}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Specialization = strings.TrimSpace(in.Specialization)
	in.MainActivity = strings.TrimSpace(in.MainActivity)

	if in.Name == "" {
		verr.Add("name", "is required")
	}
	if in.Email == "" {
		verr.Add("email", "is required")
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		verr.Add("email", "must be a valid email address")
	}
	if creating && len(in.Password) < 8 {
		verr.Add("password", "must be at least 8 characters")
	} else if !creating && in.Password != "" && len(in.Password) < 8 {
		verr.Add("password", "must be at least 8 characters")
	}
	if role, ok := ParseRole(in.Role); ok {
		in.Role = string(role)
	} else {
		verr.Add("role", "must be farmer, buyer or admin")
	}

	in.Specializations = NormalizeSpecializations(in.Specializations)
	if len(in.Specializations) == 0 {
		verr.Add("specializations", "must contain at least one entry")
	}

	return verr.Err()
}

// NormalizeSpecializations trims every entry and drops the blank ones
func NormalizeSpecializations(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// UserFilter narrows GET /admin/users
type UserFilter struct {
	Search string
	Role   Role
}

// SignInRequest is the body of POST /auth/sign-in
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse carries the bearer token and the signed-in user
type SignInResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
