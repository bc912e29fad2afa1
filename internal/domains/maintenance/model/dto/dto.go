package dto

import (
	"hostmaster/internal/domains/maintenance/model"
	"hostmaster/shared"
	gDto "hostmaster/shared/dto"
	gModel "hostmaster/shared/model"
)

type CreateMaintenanceRequest struct {
	RoomID          int64   `json:"room_id"          validate:"required,gt=0"`
	AccommodationID int64   `json:"accommodation_id" validate:"required,gt=0"`
	Description     string  `json:"description"      validate:"required,max=1000"`
	Priority        string  `json:"priority"         validate:"omitempty,oneof=low medium high"`
	AssignedTo      *string `json:"assigned_to"      validate:"omitempty,min=1,max=50"`
}

// ToModel opens the request as pending. Priority defaults to medium.
func (c *CreateMaintenanceRequest) ToModel(user string) model.MaintenanceRequest {
	priority := model.PriorityMedium
	if c.Priority != "" {
		priority = model.Priority(c.Priority)
	}

	return model.MaintenanceRequest{
		RoomID:          c.RoomID,
		AccommodationID: c.AccommodationID,
		Description:     c.Description,
		Priority:        priority,
		Status:          model.StatusPending,
		AssignedTo:      c.AssignedTo,
		Metadata:        gModel.NewMetadata(user),
	}
}

type UpdateMaintenanceRequest struct {
	Description *string `db:"description" json:"description,omitempty" validate:"omitempty,min=1,max=1000"`
	Priority    *string `db:"priority"    json:"priority,omitempty"    validate:"omitempty,oneof=low medium high"`
	Status      *string `db:"status"      json:"status,omitempty"      validate:"omitempty,oneof=pending in_progress completed"`
	AssignedTo  *string `db:"assigned_to" json:"assigned_to,omitempty" validate:"omitempty,min=1,max=50"`
}

// Triages reports whether the patch touches fields reserved to staff.
func (u *UpdateMaintenanceRequest) Triages() bool {
	return u.Status != nil || u.AssignedTo != nil
}

type MaintenanceResponse struct {
	ID              int64   `json:"id"`
	RoomID          int64   `json:"room_id"`
	AccommodationID int64   `json:"accommodation_id"`
	Description     string  `json:"description"`
	Priority        string  `json:"priority"`
	Status          string  `json:"status"`
	AssignedTo      *string `json:"assigned_to,omitempty"`
	gDto.Metadata
}

func (r *MaintenanceResponse) FromModel(model model.MaintenanceRequest) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.AccommodationID = model.AccommodationID
	r.Description = model.Description
	r.Priority = string(model.Priority)
	r.Status = string(model.Status)
	r.AssignedTo = model.AssignedTo
	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetMaintenanceResponse struct {
	Requests  []MaintenanceResponse `json:"requests"`
	TotalPage int                   `json:"total_page"`
	TotalData int                   `json:"total_data"`
}

func (r *GetMaintenanceResponse) FromModels(models []model.MaintenanceRequest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Requests = make([]MaintenanceResponse, len(models))
	for i, mod := range models {
		r.Requests[i].FromModel(mod)
	}
}
