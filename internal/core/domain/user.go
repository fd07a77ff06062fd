package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User models an employee identity record. The gateway is the sole owner of
// these records; domain peers only ever see the employee_id from the token.
type User struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Department   string    `json:"department,omitempty"`
	Position     string    `json:"position,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProfileUpdate carries the mutable profile fields. Empty fields are left
// untouched; email, employee_id and role are immutable through this path.
type ProfileUpdate struct {
	Name       string
	Department string
	Position   string
}
