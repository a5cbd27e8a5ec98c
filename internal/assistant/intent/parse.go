package intent

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var ErrUnparseable = errors.New("model output is not a JSON object")

// Plan is the model's answer before schema validation.
type Plan struct {
	AssistantMessage string            `json:"assistant_message"`
	Actions          []json.RawMessage `json:"actions"`
}

var (
	fencedJSON = regexp.MustCompile("(?is)```json\\s*(.*?)\\s*```")
	fencedAny  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// ParsePlan extracts the JSON object from a completion. It tries the whole
// text, then the first fenced block, then the span between the outermost braces.
func ParsePlan(text string) (*Plan, error) {
	obj, ok := decodeObject(text)
	if !ok {
		obj, ok = decodeFallback(text)
	}
	if !ok {
		return nil, ErrUnparseable
	}

	plan := &Plan{}
	if msg, ok := obj["assistant_message"]; ok {
		var s string
		if json.Unmarshal(msg, &s) == nil {
			plan.AssistantMessage = strings.TrimSpace(s)
		}
	}
	if actions, ok := obj["actions"]; ok {
		// A non-array actions field is treated as no actions.
		_ = json.Unmarshal(actions, &plan.Actions)
	}
	return plan, nil
}

func decodeFallback(text string) (map[string]json.RawMessage, bool) {
	m := fencedJSON.FindStringSubmatch(text)
	if m == nil {
		m = fencedAny.FindStringSubmatch(text)
	}
	if m != nil {
		return decodeObject(m[1])
	}

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first >= 0 && last > first {
		return decodeObject(text[first : last+1])
	}
	return nil, false
}

func decodeObject(s string) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
