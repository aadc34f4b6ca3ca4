package todo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/storage"
)

// Service applies user mutations to the store. Each mutation is one
// read-write transaction; callers re-render from a fresh List afterwards.
type Service struct {
	store  storage.Store
	logger *log.Logger
}

func NewService(store storage.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{store: store, logger: logger}
}

// List returns every item in ascending id order.
func (s *Service) List(ctx context.Context) ([]model.Item, error) {
	items, err := s.store.Scan(ctx)
	if err != nil {
		s.logger.Error("scan failed", "err", err)
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Add stores raw as a new unticked item. Blank input returns
// model.ErrBlankItem without touching the store.
func (s *Service) Add(ctx context.Context, raw string) (model.Item, error) {
	note, err := model.NormalizeNote(raw)
	if err != nil {
		return model.Item{}, err
	}
	payload := model.Payload{Note: note}

	var id int64
	err = s.readWrite(ctx, "add", func(tx storage.Tx) error {
		var err error
		id, err = tx.Insert(ctx, payload)
		return err
	})
	if err != nil {
		return model.Item{}, err
	}
	return model.Item{ID: id}.WithPayload(payload), nil
}

// Toggle flips the ticked flag of id. A missing id is ignored.
func (s *Service) Toggle(ctx context.Context, id int64) error {
	return s.readWrite(ctx, "toggle", func(tx storage.Tx) error {
		item, err := tx.Get(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("toggle skipped", "id", id)
			return nil
		}
		if err != nil {
			return err
		}
		item.Ticked = !item.Ticked
		return tx.Put(ctx, item)
	})
}

// Move swaps the payloads of id and neighbor so the content of id ends up
// at neighbor's position. Ids stay where they are. It reports false, with
// nothing written, when either record is missing.
func (s *Service) Move(ctx context.Context, id, neighbor int64) (bool, error) {
	if id == neighbor {
		return false, nil
	}
	moved := false
	err := s.readWrite(ctx, "move", func(tx storage.Tx) error {
		current, err := tx.Get(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		target, err := tx.Get(ctx, neighbor)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Put(ctx, current.WithPayload(target.Payload())); err != nil {
			return err
		}
		if err := tx.Put(ctx, target.WithPayload(current.Payload())); err != nil {
			return err
		}
		moved = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if !moved {
		s.logger.Debug("move aborted", "id", id, "neighbor", neighbor)
	}
	return moved, nil
}

// Delete removes id. An absent id is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.readWrite(ctx, "delete", func(tx storage.Tx) error {
		err := tx.Delete(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	})
}

// Clear removes every item. Ids already handed out are not reused.
func (s *Service) Clear(ctx context.Context) error {
	return s.readWrite(ctx, "clear", func(tx storage.Tx) error {
		return tx.Clear(ctx)
	})
}

func (s *Service) readWrite(ctx context.Context, op string, fn func(storage.Tx) error) error {
	if err := s.store.ReadWrite(ctx, fn); err != nil {
		s.logger.Error("transaction failed", "op", op, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	s.logger.Debug("transaction completed", "op", op)
	return nil
}

// ParseID reads an item id from UI text. Anything that is not a positive
// integer reports false.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
