package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/tourism/internal/constants"
)

func TestRequestIDFromContext(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		expected string
	}{
		{name: "given empty context should return empty request id", ctx: context.Background(), expected: ""},
		{
			name:     "given attached request id should return it",
			ctx:      AttachRequestIDToContext(context.Background(), "req-1"),
			expected: "req-1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RequestIDFromContext(tt.ctx))
		})
	}
}

func TestAttachTraceIdFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(AttachTraceIdFromContext())
	c := AttachRequestIDToContext(context.Background(), "req-2")

	logger.Info().Ctx(c).Msg("hello")

	actual := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &actual))
	assert.Equal(t, "req-2", actual[constants.KEY_REQUEST_ID])
	assert.NotContains(t, actual, constants.KEY_TRACE_ID)
}
