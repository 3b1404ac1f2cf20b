// file: internals/features/messes/dto/mess_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"messku_backend/internals/features/messes/model"
)

/* =========================================================
   REQUEST: Create
   ========================================================= */

type CreateMessRequest struct {
	MessName    string  `json:"mess_name" validate:"required,min=3,max=120"`
	MessAddress *string `json:"mess_address" validate:"omitempty,max=500"`
}

func (r *CreateMessRequest) ToModel() *model.Mess {
	return &model.Mess{
		MessName:    r.MessName,
		MessAddress: r.MessAddress,
		MessStatus:  model.MessStatusActive,
	}
}

/* =========================================================
   REQUEST: Patch
   ========================================================= */

type PatchMessRequest struct {
	MessName    *string `json:"mess_name" validate:"omitempty,min=3,max=120"`
	MessAddress *string `json:"mess_address" validate:"omitempty,max=500"`
	MessStatus  *string `json:"mess_status" validate:"omitempty,oneof=active inactive"`
}

func (r *PatchMessRequest) ApplyTo(m *model.Mess) {
	if r.MessName != nil {
		m.MessName = *r.MessName
	}
	if r.MessAddress != nil {
		m.MessAddress = r.MessAddress
	}
	if r.MessStatus != nil {
		m.MessStatus = *r.MessStatus
	}
}

/* =========================================================
   RESPONSE
   ========================================================= */

type MessResponse struct {
	MessID      uuid.UUID `json:"mess_id"`
	MessName    string    `json:"mess_name"`
	MessCode    string    `json:"mess_code"`
	MessStatus  string    `json:"mess_status"`
	MessAddress *string   `json:"mess_address,omitempty"`
	MessCreated time.Time `json:"mess_created_at"`
}

func FromModelMess(m *model.Mess) MessResponse {
	return MessResponse{
		MessID:      m.MessID,
		MessName:    m.MessName,
		MessCode:    m.MessCode,
		MessStatus:  m.MessStatus,
		MessAddress: m.MessAddress,
		MessCreated: m.MessCreatedAt,
	}
}

func FromModelMesses(rows []model.Mess) []MessResponse {
	out := make([]MessResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModelMess(&rows[i]))
	}
	return out
}
