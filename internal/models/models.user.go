// FilePath: internal/models/models.user.go
package models

import "time"

type UserType string

const (
	UserTypeAdmin      UserType = "admin"
	UserTypeMaintainer UserType = "maintainer"
	UserTypeUser       UserType = "user"
)

// Valid reports whether t is one of the known user types
func (t UserType) Valid() bool {
	switch t {
	case UserTypeAdmin, UserTypeMaintainer, UserTypeUser:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id" db:"id" readxs:"*" writexs:"*"`
	Username     string    `json:"username" db:"username" readxs:"*" writexs:"*"`
	PasswordHash string    `json:"-" db:"password_hash" readxs:"system" writexs:"system"`
	UserType     UserType  `json:"user_type" db:"user_type" readxs:"*" writexs:"*"`
	Email        string    `json:"email" db:"email" readxs:"*" writexs:"*"`
	Phone        string    `json:"phone" db:"phone" readxs:"*" writexs:"*"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" readxs:"*" writexs:"*"`
}
