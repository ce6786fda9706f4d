package client

import (
	"context"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

// Directory is the read-only source of directory records.
type Directory interface {
	// FetchCollection returns all users in server order.
	FetchCollection(ctx context.Context) ([]models.User, error)

	// FetchByID returns a single user or ErrNotFound.
	FetchByID(ctx context.Context, id int64) (*models.User, error)
}
