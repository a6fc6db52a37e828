package dto

import (
	"time"
)

// CreateClientRequest creates a client.
type CreateClientRequest struct {
	Name     string    `json:"name" binding:"required"`
	Birthday time.Time `json:"birthday" binding:"required"`
	Address  string    `json:"address"`
}

// UpdateClientRequest updates a client.
type UpdateClientRequest struct {
	Name     string    `json:"name" binding:"required"`
	Birthday time.Time `json:"birthday" binding:"required"`
	Address  string    `json:"address"`
	Version  int       `json:"version" binding:"required,min=1"`
}
