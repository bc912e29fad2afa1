package failure_test

import (
	"errors"
	"fmt"
	"hostmaster/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("start_date must be before end_date")), code: http.StatusBadRequest, message: "start_date must be before end_date"},
		{name: "bad request from string", err: failure.BadRequestFromString("invalid id"), code: http.StatusBadRequest, message: "invalid id"},
		{name: "unauthorized", err: failure.Unauthorized("missing token"), code: http.StatusUnauthorized, message: "missing token"},
		{name: "forbidden", err: failure.Forbidden("not your reservation"), code: http.StatusForbidden, message: "not your reservation"},
		{name: "predefined forbidden", err: failure.ForbiddenError, code: http.StatusForbidden, message: "you are not allowed to perform this action"},
		{name: "not found", err: failure.NotFound("room not found"), code: http.StatusNotFound, message: "room not found"},
		{name: "conflict", err: failure.Conflict("room already booked"), code: http.StatusConflict, message: "room already booked"},
		{name: "internal", err: failure.InternalError(errors.New("boom")), code: http.StatusInternalServerError, message: "boom"},
		{name: "custom", err: failure.New(http.StatusTooManyRequests, "slow down"), code: http.StatusTooManyRequests, message: "slow down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.EqualError(t, tt.err, tt.message)
		})
	}
}

func TestNilPassthrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "failure", err: failure.NotFound("x"), code: http.StatusNotFound},
		{name: "wrapped failure", err: fmt.Errorf("create reservation: %w", failure.Conflict("x")), code: http.StatusConflict},
		{name: "plain error", err: errors.New("db down"), code: http.StatusInternalServerError},
		{name: "nil", err: nil, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
		})
	}
}

func TestIsClientError(t *testing.T) {
	assert.True(t, failure.IsClientError(failure.Forbidden("x")))
	assert.True(t, failure.IsClientError(fmt.Errorf("wrapped: %w", failure.BadRequestFromString("x"))))
	assert.False(t, failure.IsClientError(errors.New("db down")))
	assert.False(t, failure.IsClientError(failure.InternalError(errors.New("x"))))
}
