// file: internals/features/members/dto/member_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"messku_backend/internals/features/members/model"
)

/* =========================================================
   REQUEST: Create
   ========================================================= */

type CreateMemberRequest struct {
	MemberMessID uuid.UUID `json:"member_mess_id" validate:"required"`
	MemberName   string    `json:"member_name"  validate:"required,min=2,max=120"`
	MemberEmail  string    `json:"member_email" validate:"required,email,max=160"`
	MemberPhone  *string   `json:"member_phone" validate:"omitempty,max=30"`
	MemberRole   *string   `json:"member_role"  validate:"omitempty,oneof=admin manager member"`
}

func (r *CreateMemberRequest) ToModel() *model.Member {
	m := &model.Member{
		MemberMessID: r.MemberMessID,
		MemberName:   r.MemberName,
		MemberEmail:  r.MemberEmail,
		MemberPhone:  r.MemberPhone,
	}
	if r.MemberRole != nil {
		m.MemberRole = *r.MemberRole
	}
	return m
}

/* =========================================================
   REQUEST: Patch
   ========================================================= */

type PatchMemberRequest struct {
	MemberName  *string `json:"member_name"  validate:"omitempty,min=2,max=120"`
	MemberPhone *string `json:"member_phone" validate:"omitempty,max=30"`
	MemberRole  *string `json:"member_role"  validate:"omitempty,oneof=admin manager member"`
}

func (r *PatchMemberRequest) ApplyTo(m *model.Member) {
	if r.MemberName != nil {
		m.MemberName = *r.MemberName
	}
	if r.MemberPhone != nil {
		m.MemberPhone = r.MemberPhone
	}
	if r.MemberRole != nil {
		m.MemberRole = *r.MemberRole
	}
}

/* =========================================================
   RESPONSE
   ========================================================= */

type MemberResponse struct {
	MemberID         uuid.UUID `json:"member_id"`
	MemberMessID     uuid.UUID `json:"member_mess_id"`
	MemberName       string    `json:"member_name"`
	MemberEmail      string    `json:"member_email"`
	MemberPhone      *string   `json:"member_phone,omitempty"`
	MemberRole       string    `json:"member_role"`
	MemberIsApproved bool      `json:"member_is_approved"`
	MemberIsVerified bool      `json:"member_is_verified"`
	MemberIsBlocked  bool      `json:"member_is_blocked"`
	MemberCreatedAt  time.Time `json:"member_created_at"`
}

func FromModelMember(m *model.Member) MemberResponse {
	return MemberResponse{
		MemberID:         m.MemberID,
		MemberMessID:     m.MemberMessID,
		MemberName:       m.MemberName,
		MemberEmail:      m.MemberEmail,
		MemberPhone:      m.MemberPhone,
		MemberRole:       m.MemberRole,
		MemberIsApproved: m.MemberIsApproved,
		MemberIsVerified: m.MemberIsVerified,
		MemberIsBlocked:  m.MemberIsBlocked,
		MemberCreatedAt:  m.MemberCreatedAt,
	}
}

func FromModelMembers(rows []model.Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModelMember(&rows[i]))
	}
	return out
}
