package model

import (
	"strings"
	"time"
)

// Role is a team membership role.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Team groups apps and the members allowed to manage them.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Membership links a user to a team.
type Membership struct {
	TeamID         string `json:"team_id"`
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	ProductUpdates bool   `json:"product_updates"`
}

// Invite is a pending invitation for an email address to join a team.
type Invite struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the invite can no longer be accepted.
func (i *Invite) IsExpired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// MatchesEmail compares the invited address with email, ignoring case.
func (i *Invite) MatchesEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(i.Email), strings.TrimSpace(email))
}

// SessionUser is the identity carried by a verified session token.
type SessionUser struct {
	ID    string
	Email string
}
