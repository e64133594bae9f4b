package repository

import "errors"

type GenericRepository[T any] interface {
	Create(entity *T) error
	FindByID(id uint) (*T, error)
	FindAll() ([]T, error)
	Update(entity *T) error
	Delete(id uint) error
}

var (
	// ErrStaleStock means a box item changed between read and decrement.
	ErrStaleStock = errors.New("box item stock changed concurrently")
	// ErrInsufficientStock means the catalog cannot cover a reservation.
	ErrInsufficientStock = errors.New("insufficient catalog stock")
)
