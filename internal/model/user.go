package model

import "time"

// Role identifies the authorization tier of an account. Authorization is
// enforced server-side; the client only hides affordances.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Status is the account lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Settings holds per-user display preferences stored on the server.
type Settings struct {
	Language   string `json:"language"`
	Timezone   string `json:"timezone"`
	DateFormat string `json:"dateFormat"`
	TimeFormat string `json:"timeFormat"`
	Theme      string `json:"theme"`
}

// User is the profile snapshot returned by /auth/me and the admin user list.
type User struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Surname       string     `json:"surname"`
	Email         string     `json:"email"`
	RecoveryEmail string     `json:"recoveryEmail,omitempty"`
	BirthDate     *time.Time `json:"birthDate,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	Address       string     `json:"address,omitempty"`
	AvatarURL     string     `json:"avatarUrl,omitempty"`
	Settings      Settings   `json:"settings"`

	IsVerified       bool   `json:"isVerified"`
	TwoFactorEnabled bool   `json:"twoFactorEnabled"`
	Role             Role   `json:"role"`
	Status           Status `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName joins name and surname for display.
func (u *User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session is one locally cached authenticated identity. Multiple sessions
// may coexist for account switching; exactly one is active at a time.
type Session struct {
	// Email is the account address and the session's identity key.
	Email string `json:"email"`

	// User is the cached profile snapshot from the last successful
	// /auth/me for this account.
	User User `json:"user"`

	// LoginAt is when this session was last established.
	LoginAt time.Time `json:"loginAt"`
}
