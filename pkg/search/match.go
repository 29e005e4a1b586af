package search

import (
	"strings"
	"time"

	"github.com/inkstudio/inkstudio/pkg/models"
)

// Match reports whether c satisfies the query at time now. Conditions are
// combined left to right; an empty query matches everything.
func (q *Query) Match(c *models.Concept, now time.Time) bool {
	if len(q.Conditions) == 0 {
		return true
	}

	result := q.Conditions[0].match(c, now)
	for i, op := range q.Logic {
		next := q.Conditions[i+1].match(c, now)
		if op == OperatorOR {
			result = result || next
		} else {
			result = result && next
		}
	}
	return result
}

func (cond Condition) match(c *models.Concept, now time.Time) bool {
	ok := cond.eval(c, now)
	if cond.Negate {
		return !ok
	}
	return ok
}

func (cond Condition) eval(c *models.Concept, now time.Time) bool {
	switch cond.Field {
	case FieldCreated:
		limit, _ := cond.Value.(time.Duration)
		age := now.Sub(c.CreatedAt)
		if cond.Operator == OperatorGreaterThan {
			return age > limit
		}
		return age < limit
	}

	value, _ := cond.Value.(string)
	value = strings.ToLower(value)

	switch cond.Field {
	case FieldStyle:
		want, ok := models.ParseStyle(value)
		return ok && c.Style == want
	case FieldPlacement:
		for _, p := range c.Placements {
			if models.PlacementMatches(p, value) {
				return true
			}
		}
		return false
	case FieldName:
		return strings.Contains(strings.ToLower(c.Name), value)
	case FieldContent:
		for _, text := range []string{c.Name, c.Summary, c.Prompt} {
			if strings.Contains(strings.ToLower(text), value) {
				return true
			}
		}
	}
	return false
}

// Filter parses query and returns the concepts matching it, keeping order.
func Filter(concepts []*models.Concept, query string, now time.Time) ([]*models.Concept, error) {
	q, err := NewParser().Parse(query)
	if err != nil {
		return nil, err
	}
	var out []*models.Concept
	for _, c := range concepts {
		if q.Match(c, now) {
			out = append(out, c)
		}
	}
	return out, nil
}
