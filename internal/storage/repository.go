package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/todolist/internal/model"
)

const (
	// StoreName is the record container holding every item.
	StoreName = "toDoList"
	// SchemaVersion is the version Open upgrades new and older files to.
	SchemaVersion = 4
)

var (
	ErrNotFound      = errors.New("storage: not found")
	ErrVersionTooLow = errors.New("storage: requested schema version is lower than stored version")
	ErrClosed        = errors.New("storage: store closed")
)

// Store is the persistence gateway. Every mutating call runs in its own
// transaction and returns only after that transaction committed.
type Store interface {
	Scan(ctx context.Context) ([]model.Item, error)
	Get(ctx context.Context, id int64) (model.Item, error)
	Insert(ctx context.Context, in model.Payload) (int64, error)
	Replace(ctx context.Context, in model.Item) error
	Remove(ctx context.Context, id int64) error
	RemoveAll(ctx context.Context) error
	Count(ctx context.Context) (int, error)

	// ReadWrite runs fn in one transaction. Any error from fn rolls back
	// every write fn made.
	ReadWrite(ctx context.Context, fn func(Tx) error) error
}

type Tx interface {
	Get(ctx context.Context, id int64) (model.Item, error)
	Put(ctx context.Context, in model.Item) error
	Insert(ctx context.Context, in model.Payload) (int64, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}
