package dto

import (
	"time"

	useruc "ayunova/internal/usecase/user"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	FullName         *string   `json:"full_name"`
	ConstitutionType *string   `json:"constitution_type"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewMeResponse(me useruc.Me) UserProfileResponse {
	res := UserProfileResponse{
		ID:        me.User.ID,
		Email:     me.User.Email,
		CreatedAt: me.User.CreatedAt,
	}
	if me.Profile != nil {
		res.FullName = me.Profile.FullName
		res.ConstitutionType = me.Profile.ConstitutionType
	}
	return res
}
