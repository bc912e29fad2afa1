package dto

import (
	"hostmaster/shared/constant"
	"hostmaster/shared/model"
	"hostmaster/shared/timezone"
)

// Metadata is the audit block of a response, with timestamps rendered in the application time zone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func MetadataFrom(m model.Metadata) Metadata {
	return Metadata{
		CreatedAt:  timezone.Format(m.CreatedAt, constant.DateFormat),
		ModifiedAt: timezone.Format(m.ModifiedAt, constant.DateFormat),
		CreatedBy:  m.CreatedBy,
		ModifiedBy: m.ModifiedBy,
	}
}
