package user

import "time"

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleAssistantAdmin Role = "assistant_admin"
	RoleMember         Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAssistantAdmin, RoleMember:
		return true
	}

	return false
}

type User struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	AvatarURL    string
	CreatedAt    time.Time
}
