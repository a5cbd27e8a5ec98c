package intent

import (
	"regexp"

	"github.com/fekuna/omnipos-assistant-service/internal/assistant/action"
)

var (
	orderWord  = regexp.MustCompile(`(?i)\border\b`)
	editVerb   = regexp.MustCompile(`(?i)\b(delete|remove|edit|update|modify|change)\b`)
	createVerb = regexp.MustCompile(`(?i)\b(create|make|record|new)\b`)
)

// LooksLikeOrderEdit reports whether the prompt asks to change or delete an
// existing order.
func LooksLikeOrderEdit(prompt string) bool {
	return orderWord.MatchString(prompt) && editVerb.MatchString(prompt) && !createVerb.MatchString(prompt)
}

// OrderImmutable is the reply to an order edit request.
func OrderImmutable() *action.Clarification {
	return &action.Clarification{
		Message: "Orders are immutable. I can create compensating orders (sale/restock/transfer), but I cannot edit or delete existing orders.",
		Options: []action.Option{
			{Label: "Compensating restock", Value: "Create restock order for [qty] [product] at [location]"},
			{Label: "Transfer stock", Value: "Create transfer order for [qty] [product] from [A] to [B]"},
		},
	}
}
