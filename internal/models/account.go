package models

import (
	"time"
)

// Account is a registered park visitor. Passwords are stored in plain
// text to match the behaviour of the system this replaces; see the
// design notes before changing that.
type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}
