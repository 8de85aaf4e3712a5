package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_store_test.go -package=book

// Store defines the contract shared by every book persistence backend.
type Store interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	Create(ctx context.Context, in Input) (Book, error)
	Update(ctx context.Context, id int64, in Input) (Book, error)
	Delete(ctx context.Context, id int64) error
}
