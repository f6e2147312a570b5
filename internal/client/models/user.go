// Package models defines the dashboard's view of server-owned data: users,
// credentials, statistics and analytics, plus the API response envelope.
package models

import (
	"fmt"
	"strings"
)

// Role classifies which views a session may open.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole accepts a role name in any letter case.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Status is the account state shown in the user table.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ParseStatus accepts a status name in any letter case.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User is the client-side projection of a backend account. It is a cache:
// any server error may invalidate it.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          Role   `json:"role"`
	Status        Status `json:"status"`
	LastLogin     string `json:"lastLogin,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
	EmailVerified bool   `json:"emailVerified,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserUpdate is the editable subset of User sent with PUT /admin/users/{id}.
type UserUpdate struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Status Status `json:"status"`
}

// UpdateFrom returns the editable fields of u.
func UpdateFrom(u User) UserUpdate {
	return UserUpdate{Name: u.Name, Email: u.Email, Role: u.Role, Status: u.Status}
}

// UserQuery selects one page of GET /admin/users.
type UserQuery struct {
	Page   int
	Limit  int
	Search string
	Status Status
}

// UserPage is one page of the user table.
type UserPage struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// Pages returns the number of pages for the page's limit, at least 1.
func (p UserPage) Pages() int {
	if p.Limit <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.Limit - 1) / p.Limit
}
