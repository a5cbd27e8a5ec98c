package resolver

import (
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-assistant-service/internal/assistant/action"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
)

const maxOptions = 8

type status int

const (
	resolved status = iota
	ambiguous
	notFound
)

// rung is one step of a match ladder. The first rung with any candidate decides
// the outcome, so an exact match always beats a looser one.
type rung[T any] struct {
	match     func(item *T, needle string) bool
	ambiguous string // format taking the original reference
}

type ladder[T any] struct {
	rungs    []rung[T]
	missing  string
	notFound string // format taking the original reference
	option   func(item *T) action.Option
}

type match[T any] struct {
	status     status
	value      *T
	message    string
	candidates []*T
}

func (l *ladder[T]) find(items []T, ref string) match[T] {
	needle := normalize(ref)
	if needle == "" {
		return match[T]{status: notFound, message: l.missing}
	}

	for _, r := range l.rungs {
		var hits []*T
		for i := range items {
			if r.match(&items[i], needle) {
				hits = append(hits, &items[i])
			}
		}
		switch {
		case len(hits) == 1:
			return match[T]{status: resolved, value: hits[0]}
		case len(hits) > 1:
			return match[T]{status: ambiguous, message: fmt.Sprintf(r.ambiguous, ref), candidates: hits}
		}
	}
	return match[T]{status: notFound, message: fmt.Sprintf(l.notFound, ref)}
}

func (l *ladder[T]) clarify(m match[T], fallback string) *action.Clarification {
	c := &action.Clarification{Message: m.message, Options: []action.Option{}}
	if c.Message == "" {
		c.Message = fallback
	}
	for i, item := range m.candidates {
		if i == maxOptions {
			break
		}
		c.Options = append(c.Options, l.option(item))
	}
	return c
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var productLadder = &ladder[model.Product]{
	rungs: []rung[model.Product]{
		{
			match:     func(p *model.Product, n string) bool { return normalize(p.SKU) == n },
			ambiguous: `Multiple products match SKU "%s".`,
		},
		{
			match:     func(p *model.Product, n string) bool { return normalize(p.Name) == n },
			ambiguous: `Multiple products match "%s".`,
		},
		{
			match: func(p *model.Product, n string) bool {
				return strings.Contains(normalize(p.Name), n) || strings.Contains(normalize(p.SKU), n)
			},
			ambiguous: `Multiple products match "%s". Please be more specific.`,
		},
	},
	missing:  "Product reference is missing.",
	notFound: `No product matched "%s".`,
	option: func(p *model.Product) action.Option {
		return action.Option{
			Label: fmt.Sprintf("%s (%s)", p.Name, p.SKU),
			Value: fmt.Sprintf(`Use product "%s" in this request.`, p.SKU),
		}
	},
}

var locationLadder = &ladder[model.Location]{
	rungs: []rung[model.Location]{
		{
			match:     func(l *model.Location, n string) bool { return normalize(l.Name) == n },
			ambiguous: `Multiple locations match "%s".`,
		},
		{
			match: func(l *model.Location, n string) bool {
				return strings.Contains(normalize(l.Name), n) || strings.Contains(normalize(l.City), n)
			},
			ambiguous: `Multiple locations match "%s". Please be more specific.`,
		},
	},
	missing:  "Location reference is missing.",
	notFound: `No location matched "%s".`,
	option: func(l *model.Location) action.Option {
		label := l.Name
		if l.City != "" {
			label += ", " + l.City
		}
		return action.Option{
			Label: label,
			Value: fmt.Sprintf(`Use location "%s" in this request.`, l.Name),
		}
	},
}
