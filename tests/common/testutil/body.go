//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Edit mutates a decoded request body before it is sent.
type Edit func(m map[string]any)

// Set replaces or adds key.
func Set(key string, value any) Edit {
	return func(m map[string]any) { m[key] = value }
}

// Omit removes key so the request behaves as if the client never sent it.
func Omit(key string) Edit {
	return func(m map[string]any) { delete(m, key) }
}

// Body turns a request DTO into a JSON object map and applies edits in order.
// Useful for sending values the typed DTO cannot express.
func Body(t *testing.T, dto any, edits ...Edit) map[string]any {
	t.Helper()
	raw, err := json.Marshal(dto)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, edit := range edits {
		edit(m)
	}
	return m
}
