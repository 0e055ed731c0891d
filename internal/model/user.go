package model

import (
	"encoding/json"
	"time"
)

// Role is a closed set of capability tags a user can carry
type Role string

const (
	RoleAdmin Role = "ROLE_ADMIN"
	RoleUser  Role = "ROLE_USER"
)

// User represents a credential record in the back-office
type User struct {
	ID       uint   `json:"id" gorm:"primarykey"`
	Name     string `json:"name" gorm:"type:varchar(255);not null"`
	Email    string `json:"email" gorm:"type:varchar(255);unique;not null"`
	Password string `json:"-" gorm:"type:varchar(255);not null"`
	// Roles is a JSON-encoded array of role strings, mirroring the storage
	// format of the original admin database.
	Roles     string    `json:"-" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleList decodes the stored role column into the closed Role set. Unknown
// role strings are dropped rather than surfaced as capabilities.
func (u *User) RoleList() []Role {
	if u.Roles == "" {
		return nil
	}

	var raw []string
	if err := json.Unmarshal([]byte(u.Roles), &raw); err != nil {
		return nil
	}

	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		switch Role(r) {
		case RoleAdmin, RoleUser:
			roles = append(roles, Role(r))
		}
	}
	return roles
}

// SetRoleList encodes the given roles into the stored role column
func (u *User) SetRoleList(roles []Role) error {
	raw := make([]string, 0, len(roles))
	for _, r := range roles {
		raw = append(raw, string(r))
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	u.Roles = string(encoded)
	return nil
}

// HasRole reports whether the user's role set contains the given role
func (u *User) HasRole(role Role) bool {
	for _, r := range u.RoleList() {
		if r == role {
			return true
		}
	}
	return false
}
