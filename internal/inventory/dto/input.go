package dto

type EntryInput struct {
	WorkspaceID string
	ProductID   string
	LocationID  string
	Quantity    int
	Threshold   int // used only when a row is created
}
