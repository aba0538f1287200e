package coursemail

import "strings"

// Platform identifies the sending platform in every message.
type Platform struct {
	Name         string `env:"PLATFORM_NAME" envDefault:"Course Platform"`
	BaseURL      string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	SupportEmail string `env:"SUPPORT_EMAIL" envDefault:"support@courseplatform.com"`
	LogoURL      string `env:"LOGO_URL"`
}

// URL joins p with the frontend base URL.
func (p Platform) URL(path string) string {
	return strings.TrimRight(p.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Role is the account type a message is addressed to.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// LoginPath returns the frontend login route for the role.
// Unknown roles get the student route.
func (r Role) LoginPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/login"
	case RoleStaff:
		return "/staff/login"
	case RoleStudent:
		return "/login"
	default:
		return "/login"
	}
}
