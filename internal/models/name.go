package models

import "time"

// MaxNameLength bounds a stored name, in characters. Keep in sync with the
// validate tag on AddNameRequest.
const MaxNameLength = 256

// Entry is a stored name.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NamesResponse is the body of GET /api/names.
type NamesResponse struct {
	Success bool     `json:"success"`
	Names   []string `json:"names"`
	Message string   `json:"message,omitempty"`
}

// AddNameRequest is the body of POST /api/names.
type AddNameRequest struct {
	Name string `json:"name" validate:"required,max=256"`
}

// AddNameResponse is the body of POST /api/names responses.
type AddNameResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
