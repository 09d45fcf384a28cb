// Package models defines the core data structures for users and workouts.
package models

import "time"

// User represents an account able to own workouts.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Email is the login name; unique across users.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`
	// CreatedAt is the signup time.
	CreatedAt time.Time `json:"createdAt"`
}

// Credentials is the payload accepted by signup and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
}
