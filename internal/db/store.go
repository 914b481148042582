// exposes a Store interface that is injected into API modules instead of
// having handlers reach for a package-level client.
package db

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/w4tchme/w4tchme/internal/model"
)

// ErrNotFound covers both a missing row and an expired one: an expired
// screen must be indistinguishable from a deleted one.
var ErrNotFound = errors.New("screen not found")

// ErrDuplicateID is returned when an insert collides on the random id;
// callers generate a fresh id and retry.
var ErrDuplicateID = errors.New("screen id already exists")

type Store interface {
	// screen functions
	CreateScreen(screen *model.Screen) error
	GetScreenByID(id string) (*model.Screen, error)
	ListScreens() ([]model.Screen, error)

	// purge functions
	TableNames() []string
	ClearTable(name string) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}
