package model

import (
	"fmt"
	"hostmaster/shared/model"
)

const (
	TableName  = "maintenance_requests"
	EntityName = "maintenance request"

	FieldID              = "id"
	FieldRoomID          = "room_id"
	FieldAccommodationID = "accommodation_id"
	FieldDescription     = "description"
	FieldPriority        = "priority"
	FieldStatus          = "status"
	FieldAssignedTo      = "assigned_to"
	FieldCreatedBy       = "created_by"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return Status(value), nil
	}

	return "", fmt.Errorf("unknown maintenance status %q", value)
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type MaintenanceRequest struct {
	ID              int64    `db:"id"`
	RoomID          int64    `db:"room_id"`
	AccommodationID int64    `db:"accommodation_id"`
	Description     string   `db:"description"`
	Priority        Priority `db:"priority"`
	Status          Status   `db:"status"`
	AssignedTo      *string  `db:"assigned_to"`
	model.Metadata
}
