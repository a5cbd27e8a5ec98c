package dto

import "github.com/fekuna/omnipos-assistant-service/internal/model"

type CreateOrderInput struct {
	WorkspaceID  string
	Type         model.OrderType
	ProductID    string
	LocationID   string
	ToLocationID string // transfers only
	Quantity     int
	Source       model.OrderSource
	Note         string
	Threshold    int // for inventory rows created by the order
}
