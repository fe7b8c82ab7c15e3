package request

import (
	"github.com/google/uuid"
)

type CreateBookingsRequest struct {
	SlotIDs          []uuid.UUID `json:"slot_ids" binding:"required,min=1"`
	OrganizationName string      `json:"organization_name"`
	Sport            string      `json:"sport" binding:"required"`
	PayOnline        bool        `json:"pay_online"`
}
