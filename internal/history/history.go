// Package history keeps the capped list of recent free-text commands.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Key is the well-known key the recent-command list is stored under, as a
// JSON-encoded array of strings.
const Key = "assistant.recent_commands"

// MaxEntries caps the list. Oldest entries fall off the end.
const MaxEntries = 6

// Store is the process-wide key-value persistence the history lives in.
// Implementations: MemStore (CLI, tests) and PGStore (server). A missing
// key reads as the empty string, not an error. Initialized once per
// session; no teardown.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Record adds one interpreted command to the front of the history. Empty
// input is ignored; re-adding an existing entry moves it to the front
// instead of duplicating it. Every write rewrites the whole list — the
// collection is tiny and a full read-modify-write keeps it consistent.
func Record(ctx context.Context, store Store, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	entries, err := List(ctx, store)
	if err != nil {
		return err
	}

	next := make([]string, 0, len(entries)+1)
	next = append(next, text)
	for _, e := range entries {
		if e != text {
			next = append(next, e)
		}
	}
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}

	encoded, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return store.Set(ctx, Key, string(encoded))
}

// List returns the history, newest first. A missing or corrupt value reads
// as an empty history rather than an error — the list is a convenience,
// losing it must never break command handling.
func List(ctx context.Context, store Store) ([]string, error) {
	raw, err := store.Get(ctx, Key)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, nil
	}
	return entries, nil
}

// Clear empties the history.
func Clear(ctx context.Context, store Store) error {
	return store.Set(ctx, Key, "[]")
}
