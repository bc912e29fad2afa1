package repository

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"hostmaster/shared/failure"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "unique violation", err: &pq.Error{Code: "23505"}, code: http.StatusConflict},
		{name: "exclusion violation", err: &pq.Error{Code: "23P01"}, code: http.StatusConflict},
		{name: "foreign key violation", err: &pq.Error{Code: "23503"}, code: http.StatusBadRequest},
		{name: "check violation", err: &pq.Error{Code: "23514", Constraint: "rooms_price_check"}, code: http.StatusBadRequest},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), code: http.StatusConflict},
		{name: "other postgres error", err: &pq.Error{Code: "42P01"}},
		{name: "plain error", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError("room", tt.err)

			if tt.code == 0 {
				assert.NoError(t, got)

				return
			}

			assert.Equal(t, tt.code, failure.GetCode(got))
		})
	}
}
