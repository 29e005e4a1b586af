package search

import (
	"reflect"
	"testing"
	"time"

	"github.com/inkstudio/inkstudio/pkg/models"
)

func TestTokenize(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple", "style:tribal", []string{"style:tribal"}},
		{"multiple", "style:tribal placement:arm", []string{"style:tribal", "placement:arm"}},
		{"quoted value", `name:"koi sleeve" rose`, []string{`name:"koi sleeve"`, "rose"}},
		{"extra spaces", "  koi   rose ", []string{"koi", "rose"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("tokenize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name       string
		query      string
		conditions []Condition
		logic      []Operator
		wantErr    bool
	}{
		{
			name:       "free text",
			query:      "koi",
			conditions: []Condition{{Field: FieldContent, Operator: OperatorContains, Value: "koi"}},
			logic:      []Operator{},
		},
		{
			name:  "implicit and",
			query: "style:tribal placement:forearm",
			conditions: []Condition{
				{Field: FieldStyle, Operator: OperatorEquals, Value: "tribal"},
				{Field: FieldPlacement, Operator: OperatorEquals, Value: "forearm"},
			},
			logic: []Operator{OperatorAND},
		},
		{
			name:  "or with not",
			query: `name:"koi sleeve" OR NOT style:gothic`,
			conditions: []Condition{
				{Field: FieldName, Operator: OperatorContains, Value: "koi sleeve"},
				{Field: FieldStyle, Operator: OperatorEquals, Value: "gothic", Negate: true},
			},
			logic: []Operator{OperatorOR},
		},
		{
			name:       "created within",
			query:      "created:<2w",
			conditions: []Condition{{Field: FieldCreated, Operator: OperatorLessThan, Value: 14 * 24 * time.Hour}},
			logic:      []Operator{},
		},
		{name: "unknown field", query: "color:red", wantErr: true},
		{name: "leading operator", query: "AND koi", wantErr: true},
		{name: "trailing operator", query: "koi OR", wantErr: true},
		{name: "double operator", query: "koi AND OR rose", wantErr: true},
		{name: "dangling not", query: "koi NOT", wantErr: true},
		{name: "bad created", query: "created:yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := parser.Parse(tt.query)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Parse(%q) expected error, got none", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.query, err)
			}
			if !reflect.DeepEqual(q.Conditions, tt.conditions) {
				t.Errorf("conditions = %+v, want %+v", q.Conditions, tt.conditions)
			}
			if !reflect.DeepEqual(q.Logic, tt.logic) {
				t.Errorf("logic = %v, want %v", q.Logic, tt.logic)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	koi := &models.Concept{
		Name:       "Koi sleeve",
		Style:      models.StyleTraditional,
		Summary:    "A koi swimming upstream through waves",
		Placements: []string{"Forearm", "upper arm"},
		CreatedAt:  now.Add(-48 * time.Hour),
	}
	dagger := &models.Concept{
		Name:      "Dagger and rose",
		Style:     models.StyleNeoTraditional,
		Prompt:    "dagger piercing a rose",
		CreatedAt: now.Add(-60 * 24 * time.Hour),
	}
	all := []*models.Concept{koi, dagger}

	tests := []struct {
		query string
		want  []*models.Concept
	}{
		{"", all},
		{"rose", []*models.Concept{dagger}},
		{"waves", []*models.Concept{koi}},
		{"style:traditional", []*models.Concept{koi}},
		{`style:"neo traditional"`, []*models.Concept{dagger}},
		{"placement:forearm", []*models.Concept{koi}},
		{"NOT placement:forearm", []*models.Concept{dagger}},
		{"created:<7d", []*models.Concept{koi}},
		{"created:>1m", []*models.Concept{dagger}},
		{"name:koi OR name:dagger", all},
		{"name:koi AND name:dagger", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := Filter(all, tt.query, now)
			if err != nil {
				t.Fatalf("Filter(%q) error: %v", tt.query, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q) returned %d concepts, want %d", tt.query, len(got), len(tt.want))
			}
		})
	}

	if _, err := Filter(all, "color:red", now); err == nil {
		t.Error("Filter() with unknown field should fail")
	}
}
