package dto

import "github.com/fekuna/omnipos-assistant-service/internal/model"

type CreateLocationInput struct {
	WorkspaceID string
	Name        string
	Type        model.LocationType
	City        string
}

// UpdateLocationInput carries a partial update; nil fields are left unchanged.
type UpdateLocationInput struct {
	ID          string
	WorkspaceID string
	Name        *string
	Type        *model.LocationType
	City        *string
	IsActive    *bool
}

func (in *UpdateLocationInput) Empty() bool {
	return in.Name == nil && in.Type == nil && in.City == nil && in.IsActive == nil
}
