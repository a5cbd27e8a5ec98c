package action

// Clarification asks the user to narrow or restate a request.
type Clarification struct {
	Message string   `json:"reason"`
	Options []Option `json:"options,omitempty"`
}

// Option is a suggested follow-up. Value is phrased so it can be sent back as
// the next prompt.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
