package dto

type CreateProductInput struct {
	WorkspaceID string
	Name        string
	SKU         string
	Category    string
	Threshold   int
}

// UpdateProductInput carries a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	ID          string
	WorkspaceID string
	Name        *string
	SKU         *string
	Category    *string
	Threshold   *int
	IsActive    *bool
}

func (in *UpdateProductInput) Empty() bool {
	return in.Name == nil && in.SKU == nil && in.Category == nil && in.Threshold == nil && in.IsActive == nil
}
