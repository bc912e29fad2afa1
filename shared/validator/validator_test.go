package validator_test

import (
	"hostmaster/shared/failure"
	"hostmaster/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stayRequest struct {
	RoomID     int64   `json:"room_id"            validate:"required,gt=0"`
	StartDate  string  `json:"start_date"         validate:"required,date"`
	EndDate    string  `json:"end_date"           validate:"required,date"`
	GuestCount int     `json:"guest_count"        validate:"required,gt=0,lte=10"`
	Status     string  `json:"status,omitempty"   validate:"omitempty,oneof=pending confirmed cancelled"`
	Role       string  `json:"role,omitempty"     validate:"omitempty,role"`
	Email      *string `json:"email,omitempty"    validate:"omitempty,email"`
	Note       string  `json:"note,omitempty"     validate:"omitempty,max=5"`
}

type passwordChange struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,nefield=CurrentPassword"`
}

func validStay() stayRequest {
	return stayRequest{RoomID: 3, StartDate: "2024-05-01", EndDate: "2024-05-04", GuestCount: 2}
}

func TestValidateStruct(t *testing.T) {
	badEmail := "front-desk"

	tests := []struct {
		name    string
		mutate  func(r *stayRequest)
		message string
	}{
		{name: "valid", mutate: func(_ *stayRequest) {}},
		{name: "missing room", mutate: func(r *stayRequest) { r.RoomID = 0 }, message: "room_id is required"},
		{name: "malformed date", mutate: func(r *stayRequest) { r.StartDate = "01/05/2024" }, message: "start_date must be a date in YYYY-MM-DD format"},
		{name: "too many guests", mutate: func(r *stayRequest) { r.GuestCount = 11 }, message: "guest_count must be less than or equal to 10"},
		{name: "unknown status", mutate: func(r *stayRequest) { r.Status = "checked_in" }, message: "status must be one of pending confirmed cancelled"},
		{name: "unknown role", mutate: func(r *stayRequest) { r.Role = "owner" }, message: "role must be one of admin employee client"},
		{name: "bad email", mutate: func(r *stayRequest) { r.Email = &badEmail }, message: "email must be a valid email address"},
		{name: "long note", mutate: func(r *stayRequest) { r.Note = "breakfast" }, message: "note must be at most 5 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStay()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestValidateStruct_NeField(t *testing.T) {
	err := validator.ValidateStruct(&passwordChange{CurrentPassword: "same-pass", NewPassword: "same-pass"})

	assert.EqualError(t, err, "new_password must differ from current_password")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "valid body", body: `{"room_id":3,"start_date":"2024-05-01","end_date":"2024-05-04","guest_count":2}`},
		{name: "empty body", body: "", message: "request body is required"},
		{name: "malformed json", body: `{"room_id":`, message: "failed to decode request body"},
		{name: "wrong type", body: `{"room_id":"three"}`, message: "failed to decode request body"},
		{name: "rule violation", body: `{"room_id":3,"start_date":"2024-05-01","end_date":"2024-05-04"}`, message: "guest_count is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req stayRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.message == "" {
				require.NoError(t, err)
				assert.Equal(t, int64(3), req.RoomID)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2024-02-29", "date"))
	assert.Error(t, validator.ValidateVar("2023-02-29", "date"))
	assert.NoError(t, validator.ValidateVar("employee", "role"))
	assert.Error(t, validator.ValidateVar("guest", "role"))
}
