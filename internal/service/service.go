package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/repository"
)

var (
	// ErrWishlistNotFound is returned when an operation targets a wishlist
	// that does not exist.
	ErrWishlistNotFound = errors.New("wishlist not found")
	// ErrItemNotFound is returned when an operation targets an item that does
	// not exist or belongs to another wishlist.
	ErrItemNotFound = errors.New("item not found")
)

// Service is the business logic layer on top of the store. Every mutation
// runs in its own transaction; any failure to persist is reported as a
// *models.ValidationError carrying the cause.
type Service struct {
	store  repository.Store
	logger *logrus.Logger
	now    func() time.Time
}

// New creates a new Service with all required dependencies.
func New(store repository.Store, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// withTx runs fn in a transaction and converts store failures into
// validation errors. Not-found sentinels and validation errors pass through
// unchanged.
func (s *Service) withTx(ctx context.Context, entity, op string, fn func(tx repository.Repositories) error) error {
	err := storeError(s.store.WithTx(ctx, fn))
	observe(entity, op, err)
	return err
}

func storeError(err error) error {
	var verr *models.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrWishlistNotFound), errors.Is(err, ErrItemNotFound):
		return err
	case errors.As(err, &verr):
		return err
	case errors.Is(err, repository.ErrConstraint):
		return models.NewConstraintError(err)
	default:
		return models.NewPersistenceError(err)
	}
}

// stateError rejects a record whose id does not match the operation: a
// create with a preset id or an update without one.
func stateError(msg string) error {
	return &models.ValidationError{Kind: models.KindConstraint, Msg: msg}
}
