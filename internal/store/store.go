// Package store provides keyed persistence for session state. Values are
// stored as raw JSON so callers own their own schemas; a corrupt value is
// surfaced as bytes and left to the caller's fallback logic.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Well-known record keys. One record per concern, replaced wholesale on write.
const (
	KeyChatHistory         = "skillMatchChatHistory"
	KeyCertCatalog         = "skillMatchCertCatalog"
	KeyUserRules           = "skillMatchUserRules"
	KeyLastRecommendations = "skillMatchLastRecommendations"
)

// Store is a keyed JSON record store.
type Store interface {
	// Get returns the raw value for key and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the value for key wholesale.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the record for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// GetJSON loads and unmarshals the record for key into out. Returns false
// when the key does not exist. A present-but-corrupt value is an error so
// callers can fall back to defaults without losing other records.
func GetJSON(ctx context.Context, s Store, key string, out any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return ok, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("failed to unmarshal record %s: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}
