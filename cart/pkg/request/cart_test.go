package request

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "calendar date",
			input:    `"2024-01-10"`,
			expected: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339 timestamp is normalized to utc",
			input:    `"2024-01-10T12:00:00+05:30"`,
			expected: time.Date(2024, 1, 10, 6, 30, 0, 0, time.UTC),
		},
		{
			name:     "empty string is zero",
			input:    `""`,
			expected: time.Time{},
		},
		{name: "garbage", input: `"tomorrow"`, wantErr: true},
		{name: "number", input: `20240110`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(d.Time), "expected %s got %s", tt.expected, d.Time)
		})
	}
}

func TestAddItemValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid hotel without quantity",
			body:    `{"itemType":"hotel","itemId":"0f8fad5b-d9cb-469f-a165-70867728950e","startDate":"2024-01-10","endDate":"2024-01-13"}`,
			wantErr: false,
		},
		{
			name:    "unknown item type",
			body:    `{"itemType":"flight","itemId":"0f8fad5b-d9cb-469f-a165-70867728950e","startDate":"2024-01-10","endDate":"2024-01-13"}`,
			wantErr: true,
		},
		{
			name:    "missing item id",
			body:    `{"itemType":"vehicle","startDate":"2024-01-10","endDate":"2024-01-13"}`,
			wantErr: true,
		},
		{
			name:    "missing end date",
			body:    `{"itemType":"vehicle","itemId":"0f8fad5b-d9cb-469f-a165-70867728950e","startDate":"2024-01-10"}`,
			wantErr: true,
		},
		{
			name:    "negative quantity",
			body:    `{"itemType":"vehicle","itemId":"0f8fad5b-d9cb-469f-a165-70867728950e","startDate":"2024-01-10","endDate":"2024-01-13","quantity":-1}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := AddItem{}
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			err := validate.StructCtx(context.Background(), req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestQuantityOrDefault(t *testing.T) {
	assert.Equal(t, 1, AddItem{}.QuantityOrDefault())
	assert.Equal(t, 3, AddItem{Quantity: 3}.QuantityOrDefault())
}
