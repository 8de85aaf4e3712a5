package book

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// Service provides book-related business logic.
type Service struct {
	store    Store
	validate *validator.Validate
}

// NewService creates a new book service.
func NewService(store Store) *Service {
	return &Service{store: store, validate: validator.New()}
}

// List returns every book known to the store.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.store.List(ctx)
}

// Get returns a book by its id.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.store.Get(ctx, id)
}

// Create validates the input before handing it to the store.
func (s *Service) Create(ctx context.Context, in Input) (Book, error) {
	if err := s.Validate(in); err != nil {
		return Book{}, err
	}
	return s.store.Create(ctx, in)
}

// Update validates the input and replaces the book with the given id.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Book, error) {
	if err := s.Validate(in); err != nil {
		return Book{}, err
	}
	return s.store.Update(ctx, id, in)
}

// Delete removes a book by its id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// Validate reports ErrValidation when isbn, title or author is empty.
func (s *Service) Validate(in Input) error {
	if err := s.validate.Struct(in); err != nil {
		return ErrValidation
	}
	return nil
}
