package liftright

import (
	"errors"
	"fmt"

	"liyu1981.xyz/liftright-data-server/pkg/db"
)

var (
	ErrDatabase      = errors.New("database error")
	ErrSerialization = errors.New("serialization error")
	ErrUnimplemented = errors.New("unimplemented")
	ErrValidation    = errors.New("validation error")
	ErrNoSuchDevice  = errors.New("no such device")
)

func wrap(op string, kind error, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, cause)
}

// fromStore classifies an error returned by db.Store.
func fromStore(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrNotFound):
		return wrap(op, ErrNoSuchDevice, nil)
	case errors.Is(err, db.ErrEncoding):
		return wrap(op, ErrSerialization, err)
	default:
		return wrap(op, ErrDatabase, err)
	}
}
