package dto

import (
	"ayunova/internal/domain/dashboard"
	"ayunova/internal/usecase"
)

type SignOutResponse struct {
	Notification usecase.Notification `json:"notification"`
}

type DashboardResponse struct {
	Authenticated bool           `json:"authenticated"`
	View          dashboard.View `json:"view"`
}
