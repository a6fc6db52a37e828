// Package client implements the client catalog and the birthday scheduler.
package client

import (
	"context"
	"time"

	"confeito/internal/core/apperror"
	"confeito/internal/core/entity"
)

// Client is a buyer of recipes.
type Client struct {
	entity.Catalog

	// Birthday carries the stored year but only month and day matter
	// for recurrence.
	Birthday time.Time `db:"birthday" json:"birthday"`

	Address string `db:"address" json:"address,omitempty"`
}

// New creates a Client with generated ID.
func New(name string, birthday time.Time, address string) *Client {
	return &Client{
		Catalog:  entity.NewCatalog(name),
		Birthday: birthday,
		Address:  address,
	}
}

// Validate implements entity.Validatable.
func (c *Client) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}
	if c.Birthday.IsZero() {
		return apperror.NewValidation("birthday is required").
			WithDetail("field", "birthday")
	}
	return nil
}
