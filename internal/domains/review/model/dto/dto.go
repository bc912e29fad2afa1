package dto

import (
	"hostmaster/internal/domains/review/model"
	"hostmaster/shared"
	gDto "hostmaster/shared/dto"
	gModel "hostmaster/shared/model"
)

type CreateReviewRequest struct {
	AccommodationID int64   `json:"accommodation_id"  validate:"required,gt=0"`
	Rating          int     `json:"rating"            validate:"required,min=1,max=5"`
	Comment         *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

func (r *CreateReviewRequest) ToModel(user string) model.Review {
	return model.Review{
		AccommodationID: r.AccommodationID,
		UserUsername:    user,
		Rating:          r.Rating,
		Comment:         r.Comment,
		Metadata:        gModel.NewMetadata(user),
	}
}

type UpdateReviewRequest struct {
	Rating  *int    `db:"rating"  json:"rating,omitempty"  validate:"omitempty,min=1,max=5"`
	Comment *string `db:"comment" json:"comment,omitempty" validate:"omitempty,max=1000"`
}

type ReviewResponse struct {
	ID              int64   `json:"id"`
	AccommodationID int64   `json:"accommodation_id"`
	UserUsername    string  `json:"user_username"`
	Rating          int     `json:"rating"`
	Comment         *string `json:"comment,omitempty"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.AccommodationID = model.AccommodationID
	r.UserUsername = model.UserUsername
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}
