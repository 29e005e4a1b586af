// Package search filters saved concepts with queries such as
// `style:traditional placement:forearm koi` or `NOT style:tribal created:<7d`.
package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FieldType represents the concept field a condition looks at
type FieldType string

const (
	FieldStyle     FieldType = "style"
	FieldPlacement FieldType = "placement"
	FieldName      FieldType = "name"
	FieldContent   FieldType = "content"
	FieldCreated   FieldType = "created"
)

// Operator represents a search operator
type Operator string

const (
	OperatorEquals      Operator = "="
	OperatorContains    Operator = "contains"
	OperatorGreaterThan Operator = ">"
	OperatorLessThan    Operator = "<"
	OperatorAND         Operator = "AND"
	OperatorOR          Operator = "OR"
)

// Condition represents a single search condition. Value is a string, or a
// time.Duration for FieldCreated.
type Condition struct {
	Field    FieldType
	Operator Operator
	Value    interface{}
	Negate   bool
}

// Query represents a parsed search query
type Query struct {
	Conditions []Condition
	Logic      []Operator // Logic operators between conditions
	Raw        string     // Original query string
}

// Parser handles parsing of search queries
type Parser struct {
	fieldPattern   *regexp.Regexp
	quotedPattern  *regexp.Regexp
	createdPattern *regexp.Regexp
}

// NewParser creates a new search query parser
func NewParser() *Parser {
	return &Parser{
		fieldPattern:   regexp.MustCompile(`^(\w+):(.+)$`),
		quotedPattern:  regexp.MustCompile(`^"([^"]*)"$`),
		createdPattern: regexp.MustCompile(`^([<>])(\d+)([dwmy])$`),
	}
}

// Parse parses a search query string into a Query object
func (p *Parser) Parse(input string) (*Query, error) {
	query := &Query{
		Raw:        input,
		Conditions: []Condition{},
		Logic:      []Operator{},
	}

	if err := p.parseTokens(p.tokenize(input), query); err != nil {
		return nil, err
	}
	return query, nil
}

// tokenize splits the input on spaces outside quotes
func (p *Parser) tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ' ' && !inQuotes:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

func (p *Parser) parseTokens(tokens []string, query *Query) error {
	// pending tracks whether the last condition already has an operator after it
	pending := false

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		negate := false

		switch strings.ToUpper(token) {
		case "AND", "OR":
			if len(query.Conditions) == 0 || pending {
				return fmt.Errorf("unexpected operator %s", token)
			}
			query.Logic = append(query.Logic, Operator(strings.ToUpper(token)))
			pending = true
			continue
		case "NOT":
			i++
			if i >= len(tokens) {
				return fmt.Errorf("NOT operator requires a condition")
			}
			token = tokens[i]
			negate = true
		}

		cond, err := p.parseCondition(token)
		if err != nil {
			return err
		}
		cond.Negate = negate

		// Adjacent conditions are joined with AND
		if len(query.Conditions) > 0 && !pending {
			query.Logic = append(query.Logic, OperatorAND)
		}
		query.Conditions = append(query.Conditions, *cond)
		pending = false
	}

	if pending {
		return fmt.Errorf("query ends with an operator")
	}
	return nil
}

// parseCondition parses a field:value token, or free text matched against
// the concept's content
func (p *Parser) parseCondition(token string) (*Condition, error) {
	matches := p.fieldPattern.FindStringSubmatch(token)
	if len(matches) != 3 {
		return &Condition{
			Field:    FieldContent,
			Operator: OperatorContains,
			Value:    p.unquote(token),
		}, nil
	}

	field := strings.ToLower(matches[1])
	value := p.unquote(matches[2])

	switch FieldType(field) {
	case FieldStyle, FieldPlacement:
		return &Condition{Field: FieldType(field), Operator: OperatorEquals, Value: value}, nil
	case FieldName, FieldContent:
		return &Condition{Field: FieldType(field), Operator: OperatorContains, Value: value}, nil
	case FieldCreated:
		age, op, err := p.parseCreatedValue(value)
		if err != nil {
			return nil, err
		}
		return &Condition{Field: FieldCreated, Operator: op, Value: age}, nil
	}
	return nil, fmt.Errorf("unknown field: %s", field)
}

// parseCreatedValue parses values like "<7d" (newer than a week) or ">1y".
// The operator compares the concept's age.
func (p *Parser) parseCreatedValue(value string) (time.Duration, Operator, error) {
	matches := p.createdPattern.FindStringSubmatch(value)
	if len(matches) != 4 {
		return 0, "", fmt.Errorf("invalid created value format: %s (expected format: <7d, >2w, etc.)", value)
	}

	n, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, "", fmt.Errorf("invalid created value: %s", value)
	}

	day := 24 * time.Hour
	var unit time.Duration
	switch matches[3] {
	case "d":
		unit = day
	case "w":
		unit = 7 * day
	case "m":
		unit = 30 * day
	case "y":
		unit = 365 * day
	}

	op := OperatorLessThan
	if matches[1] == ">" {
		op = OperatorGreaterThan
	}
	return time.Duration(n) * unit, op, nil
}

func (p *Parser) unquote(s string) string {
	if matches := p.quotedPattern.FindStringSubmatch(s); len(matches) == 2 {
		return matches[1]
	}
	return s
}
