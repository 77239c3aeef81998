package models

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

// NotFoundError names what was missing. errors.Is(err, ErrNotFound) holds.
type NotFoundError struct {
	Kind string // "project", "standard", "question", "client"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NotFound(kind, key string) error {
	return &NotFoundError{Kind: kind, Key: key}
}
