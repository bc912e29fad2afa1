package dto

import (
	"hostmaster/internal/domains/user/model"
	"hostmaster/permissions"
	"hostmaster/shared"
	gDto "hostmaster/shared/dto"
	gModel "hostmaster/shared/model"
)

type CreateUserRequest struct {
	Username         string  `json:"username"                    validate:"required,min=3,max=50"`
	Password         string  `json:"password"                    validate:"required,min=8,max=72"`
	Email            *string `json:"email,omitempty"             validate:"omitempty,email"`
	FullName         *string `json:"full_name,omitempty"         validate:"omitempty,max=100"`
	Role             string  `json:"role"                        validate:"required,role"`
	AccommodationIDs []int64 `json:"accommodation_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

func (r *CreateUserRequest) ToModel(createdBy string, hashedPassword string) model.User {
	role, _ := permissions.ParseRole(r.Role)

	return model.User{
		Username:       r.Username,
		Email:          r.Email,
		FullName:       r.FullName,
		HashedPassword: hashedPassword,
		Role:           role,
		Metadata:       gModel.NewMetadata(createdBy),
	}
}

// UpdateUserRequest carries the columns an admin may patch. AccommodationIDs,
// when present, replaces the user's accommodation associations.
type UpdateUserRequest struct {
	Email            *string  `db:"email"     json:"email,omitempty"             validate:"omitempty,email"`
	FullName         *string  `db:"full_name" json:"full_name,omitempty"         validate:"omitempty,max=100"`
	Role             *string  `db:"role"      json:"role,omitempty"              validate:"omitempty,role"`
	Disabled         *bool    `db:"disabled"  json:"disabled,omitempty"`
	AccommodationIDs *[]int64 `json:"accommodation_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

type UserResponse struct {
	Username         string  `json:"username"`
	Email            *string `json:"email,omitempty"`
	FullName         *string `json:"full_name,omitempty"`
	Disabled         bool    `json:"disabled"`
	Role             string  `json:"role"`
	AccommodationIDs []int64 `json:"accommodation_ids"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User, accommodationIDs []int64) {
	r.Username = model.Username
	r.Email = model.Email
	r.FullName = model.FullName
	r.Disabled = model.Disabled
	r.Role = model.Role.String()

	r.AccommodationIDs = accommodationIDs
	if r.AccommodationIDs == nil {
		r.AccommodationIDs = []int64{}
	}

	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod, nil)
	}
}
