package intent

import (
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-assistant-service/internal/assistant/action"
	"github.com/fekuna/omnipos-assistant-service/internal/catalog"
)

const DefaultHintLimit = 50

// SystemPrompt describes the action vocabulary and the caller's catalog to the
// model. At most hintLimit products and hintLimit locations are listed.
func SystemPrompt(snap *catalog.Snapshot, hintLimit int) string {
	if hintLimit <= 0 {
		hintLimit = DefaultHintLimit
	}

	kinds := make([]string, 0, len(action.MutatingKinds)+1)
	for _, k := range action.MutatingKinds {
		kinds = append(kinds, string(k))
	}
	kinds = append(kinds, string(action.KindReadQuery))

	intents := make([]string, 0, len(action.ReadIntents))
	for _, i := range action.ReadIntents {
		intents = append(intents, string(i))
	}

	var products, locations []string
	for i, p := range snap.Products {
		if i == hintLimit {
			break
		}
		products = append(products, fmt.Sprintf("%s [%s]", p.Name, p.SKU))
	}
	for i, l := range snap.Locations {
		if i == hintLimit {
			break
		}
		locations = append(locations, fmt.Sprintf("%s (%s)", l.Name, l.Type))
	}

	var b strings.Builder
	b.WriteString("You turn inventory operations requests into structured actions.\n")
	b.WriteString("Respond with strict JSON only, shaped as:\n")
	b.WriteString(`{"assistant_message": "short reply to the user", "actions": [ ... ]}` + "\n\n")
	b.WriteString("Each action is an object with a \"kind\" field. Allowed kinds:\n")
	b.WriteString(strings.Join(kinds, ", ") + "\n\n")
	b.WriteString("For read.query, \"intent\" must be one of: " + strings.Join(intents, ", ") + "\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("1) Return at most one mutating action.\n")
	b.WriteString("2) Refer to products and locations by name or SKU using product_ref, location_ref, from_location_ref and to_location_ref.\n")
	b.WriteString("3) Never output SQL, GraphQL, markdown or internal IDs.\n\n")
	b.WriteString("Catalog products: " + joinOrNone(products) + "\n")
	b.WriteString("Catalog locations: " + joinOrNone(locations))
	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
