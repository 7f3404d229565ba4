package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mentormatch/apiserver/internal/services"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", &services.Error{Kind: services.ErrValidation, Message: "bad"}, http.StatusBadRequest, "bad"},
		{"conflict", &services.Error{Kind: services.ErrConflict, Message: "taken"}, http.StatusBadRequest, "taken"},
		{"unauthorized", &services.Error{Kind: services.ErrUnauthorized, Message: "who"}, http.StatusUnauthorized, "who"},
		{"forbidden", &services.Error{Kind: services.ErrForbidden, Message: "no"}, http.StatusForbidden, "no"},
		{"not found", &services.Error{Kind: services.ErrNotFound, Message: "gone"}, http.StatusNotFound, "gone"},
		{"wrapped", fmt.Errorf("ctx: %w", &services.Error{Kind: services.ErrNotFound}), http.StatusNotFound, "not found"},
		{"unexpected", errors.New("db down"), http.StatusInternalServerError, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, zap.NewNop(), tt.err, "failed")

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantBody, body.Error)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestWriteServiceErrorLogsUnexpected(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	rec := httptest.NewRecorder()

	writeServiceError(rec, zap.New(core), errors.New("db down"), "failed to list mentors")
	writeServiceError(rec, zap.New(core), &services.Error{Kind: services.ErrForbidden}, "failed to list mentors")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "failed to list mentors", logs.All()[0].Message)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc", "abc", false},
		{"bearer  abc ", "abc", false},
		{"", "", true},
		{"Basic abc", "", true},
		{"Bearer ", "", true},
		{"abc", "", true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		got, err := bearerToken(r)
		if tt.wantErr {
			assert.Error(t, err, tt.header)
			continue
		}
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, got)
	}
}
