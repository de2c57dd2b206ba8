package models

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

type Role string

const (
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
)

// User is an identity record. Passwords are compared in the clear:
// this is a classroom simulation, there is no real credential storage.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=Teacher Student"`
}

func (u *User) Validate() error {
	validate := validator.New()
	return validate.Struct(u)
}

// EmailMatches compares emails case-insensitively.
func (u *User) EmailMatches(email string) bool {
	return strings.EqualFold(u.Email, email)
}
