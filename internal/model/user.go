package model

import (
	"strings"
	"time"
)

// RoleAdmin gates destructive and administrative operations.
const RoleAdmin = "Admin"

// RoleUser is assigned on registration.
const RoleUser = "User"

// User represents an account that can authenticate against the API.
type User struct {
	ID           int64     `json:"UserId" gorm:"column:UserId;primaryKey;autoIncrement"`
	DocumentID   string    `json:"Id,omitempty" gorm:"-"`
	UserName     string    `json:"UserName" gorm:"column:UserName;size:100;not null"`
	Email        string    `json:"Email" gorm:"column:Email;size:100;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:PasswordHash;not null"` // never serialized
	Roles        string    `json:"Roles" gorm:"column:Roles;size:50;not null;default:'User'"`
	CreatedAt    time.Time `json:"CreatedAt" gorm:"column:CreatedAt"`
	UpdatedAt    time.Time `json:"UpdatedAt" gorm:"column:UpdatedAt"`
}

// TableName pins the relational table name.
func (User) TableName() string { return "users" }

// RoleList expands the comma-separated role string.
func (u *User) RoleList() []string {
	return SplitRoles(u.Roles)
}

// HasRole compares role names case-insensitively.
func (u *User) HasRole(role string) bool {
	for _, r := range u.RoleList() {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// SplitRoles turns "Admin, User," into ["Admin", "User"].
func SplitRoles(roles string) []string {
	var out []string
	for _, r := range strings.Split(roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// NormalizeEmail trims and lower-cases an email before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
