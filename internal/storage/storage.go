// Package storage keeps the few values the portal persists between runs:
// the session token, the remembered login email and the display language.
package storage

import (
	"context"
	"errors"
)

const (
	KeyToken           = "token"
	KeyRememberedEmail = "rememberedEmail"
	KeyLanguage        = "language"
)

var ErrNotFound = errors.New("storage: key not found")

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete of a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// GetOr returns fallback when the key is missing or unreadable.
func GetOr(ctx context.Context, s Store, key, fallback string) string {
	v, err := s.Get(ctx, key)
	if err != nil {
		return fallback
	}
	return v
}
