package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-assistant-service/internal/location"
	"github.com/fekuna/omnipos-assistant-service/internal/location/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type locationUseCase struct {
	repo   location.Repository
	logger logger.ZapLogger
}

func NewLocationUseCase(repo location.Repository, log logger.ZapLogger) location.UseCase {
	return &locationUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *locationUseCase) CreateLocation(ctx context.Context, input *dto.CreateLocationInput) (*model.Location, error) {
	name := strings.TrimSpace(input.Name)
	city := strings.TrimSpace(input.City)
	if name == "" || city == "" {
		return nil, fmt.Errorf("name and city are required")
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("invalid location type %q", input.Type)
	}

	now := time.Now().UTC()
	l := &model.Location{
		ID:          uuid.New().String(),
		WorkspaceID: input.WorkspaceID,
		Name:        name,
		Type:        input.Type,
		City:        city,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (uc *locationUseCase) GetLocation(ctx context.Context, workspaceID, id string) (*model.Location, error) {
	l, err := uc.repo.FindByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, location.ErrNotFound
	}
	return l, nil
}

func (uc *locationUseCase) ListLocations(ctx context.Context, workspaceID string) ([]model.Location, error) {
	return uc.repo.FindAll(ctx, workspaceID)
}

func (uc *locationUseCase) UpdateLocation(ctx context.Context, input *dto.UpdateLocationInput) (*model.Location, error) {
	l, err := uc.GetLocation(ctx, input.WorkspaceID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		l.Name = strings.TrimSpace(*input.Name)
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, fmt.Errorf("invalid location type %q", *input.Type)
		}
		l.Type = *input.Type
	}
	if input.City != nil {
		l.City = strings.TrimSpace(*input.City)
	}
	if input.IsActive != nil {
		l.IsActive = *input.IsActive
	}

	l.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (uc *locationUseCase) DeactivateLocation(ctx context.Context, workspaceID, id string) (*model.Location, error) {
	inactive := false
	l, err := uc.UpdateLocation(ctx, &dto.UpdateLocationInput{ID: id, WorkspaceID: workspaceID, IsActive: &inactive})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("location deactivated", zap.String("location_id", l.ID), zap.String("workspace_id", workspaceID))
	return l, nil
}
