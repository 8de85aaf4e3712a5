package book

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no book matches the requested id.
	ErrNotFound = errors.New("book not found")
	// ErrValidation is returned when a required field is missing.
	ErrValidation = errors.New("isbn, title and author are required")
	// ErrNoDatabase is returned by the relational store when no pool was configured.
	ErrNoDatabase = errors.New("database not configured")
)

// Book represents a catalog entry.
type Book struct {
	ID              int64  `json:"id"`
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear string `json:"publicationYear"`
	Description     string `json:"description"`
}

// Input is the payload accepted on create and update. Any id sent by the
// client is dropped; ids are owned by the store.
type Input struct {
	ISBN            string `json:"isbn" validate:"required"`
	Title           string `json:"title" validate:"required"`
	Author          string `json:"author" validate:"required"`
	PublicationYear string `json:"publicationYear"`
	Description     string `json:"description"`
}

func (in Input) withID(id int64) Book {
	return Book{
		ID:              id,
		ISBN:            in.ISBN,
		Title:           in.Title,
		Author:          in.Author,
		PublicationYear: in.PublicationYear,
		Description:     in.Description,
	}
}

// UnavailableError marks a failure of a backing store itself (driver, pool,
// network) as opposed to a domain outcome such as ErrNotFound.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err signals a store that could not serve the call.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}
