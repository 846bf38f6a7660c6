package internal

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/tourism/internal/errors"
)

const testSecret = "test-secret"

func TestVerifyToken(t *testing.T) {
	userId := uuid.New()
	valid, err := NewToken(context.Background(), userId, testSecret, time.Now())
	require.NoError(t, err)
	expired, err := NewToken(context.Background(), userId, testSecret, time.Now().Add(-8*24*time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name        string
		token       string
		secret      string
		expectError bool
	}{
		{name: "given valid token should return parsed token", token: valid, secret: testSecret},
		{name: "given token signed with other secret should fail", token: valid, secret: "other", expectError: true},
		{name: "given expired token should fail", token: expired, secret: testSecret, expectError: true},
		{name: "given garbage should fail", token: "not-a-token", secret: testSecret, expectError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := VerifyToken(context.Background(), tt.token, tt.secret)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, token)
				return
			}
			require.NoError(t, err)
			subject, err := token.Claims.GetSubject()
			require.NoError(t, err)
			assert.Equal(t, userId.String(), subject)
		})
	}
}

func TestUserIdFromJwtToken(t *testing.T) {
	userId := uuid.New()

	tests := []struct {
		name        string
		context     context.Context
		expected    uuid.UUID
		expectedErr error
	}{
		{
			name: "given token with subject should return user id",
			context: AttachJwtToken(context.Background(), &jwt.Token{
				Claims: &jwt.RegisteredClaims{Subject: userId.String()},
			}),
			expected: userId,
		},
		{
			name:        "given no token should return empty auth",
			context:     context.Background(),
			expected:    uuid.Nil,
			expectedErr: errors.ErrEmptyAuth,
		},
		{
			name: "given token without subject should return empty subject",
			context: AttachJwtToken(context.Background(), &jwt.Token{
				Claims: &jwt.RegisteredClaims{},
			}),
			expected:    uuid.Nil,
			expectedErr: errors.ErrEmptySubject,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := UserIdFromJwtToken(tt.context)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, actual)
		})
	}
}
