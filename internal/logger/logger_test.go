package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-sync/models"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNewLogger_RoleField verifies that every log entry carries the role.
func TestNewLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("notesync")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "notesync", entry["role"])
	assert.Contains(t, entry, "time")
}

// TestNewLogger_CallerFieldName verifies that the caller field is named "func".
func TestNewLogger_CallerFieldName(t *testing.T) {
	NewLogger("caller-role")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

// TestGetChildLogger_InheritsFields verifies that the child logger keeps the
// parent's fields and is a distinct instance.
func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("inherited-role")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)

	child.Info().Msg("child message")

	assert.Equal(t, "inherited-role", decodeEntry(t, &buf)["role"])
}

func TestWithScope(t *testing.T) {
	tests := []struct {
		name  string
		scope models.Scope
		want  string
	}{
		{name: "own account", scope: models.OwnAccount(), want: models.OwnAccountKey},
		{name: "linked notebook", scope: models.LinkedNotebookScope("ln-1"), want: "ln-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger("scoped")
			l.Logger = l.Output(&buf)

			l.WithScope(tt.scope).Info().Msg("scoped message")

			entry := decodeEntry(t, &buf)
			assert.Equal(t, tt.want, entry["scope"])
			assert.Equal(t, "scoped", entry["role"])
		})
	}
}

// TestFromContext_ReturnsAttachedLogger verifies the WithContext/FromContext
// round trip.
func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{zerolog.New(&buf).With().Str("ctx-key", "ctx-value").Logger()}
	ctx := l.WithContext(context.Background())

	got := FromContext(ctx)
	require.NotNil(t, got)
	got.Info().Msg("from context")

	assert.Equal(t, "ctx-value", decodeEntry(t, &buf)["ctx-key"])
}

// TestFromContext_NotNil verifies that FromContext never returns nil.
func TestFromContext_NotNil(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}

func TestFromContextOr(t *testing.T) {
	var fallbackBuf, ctxBuf bytes.Buffer
	fallback := &Logger{zerolog.New(&fallbackBuf)}

	FromContextOr(context.Background(), fallback).Info().Msg("no context logger")
	assert.Contains(t, fallbackBuf.String(), "no context logger")

	attached := &Logger{zerolog.New(&ctxBuf)}
	ctx := attached.WithContext(context.Background())
	FromContextOr(ctx, fallback).Info().Msg("context logger")
	assert.Contains(t, ctxBuf.String(), "context logger")
	assert.NotContains(t, fallbackBuf.String(), "context logger")
}
