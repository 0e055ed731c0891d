package validate

import (
	"reflect"
	"testing"
)

func TestCheckCollectsAllViolations(t *testing.T) {
	schema := Required("title", "price", "quantity")

	violations := schema.Check(map[string]interface{}{
		"title": "",
		// price missing entirely
		"quantity": nil,
	})

	if len(violations) != 3 {
		t.Fatalf("expected all 3 violations collected, got %d: %v", len(violations), violations)
	}

	want := []string{
		"[title]: This value should not be blank.",
		"[price]: This value should not be blank.",
		"[quantity]: This value should not be blank.",
	}
	if got := Messages(violations); !reflect.DeepEqual(got, want) {
		t.Errorf("Messages() = %v, want %v", got, want)
	}
}

func TestCheckBlankSemantics(t *testing.T) {
	schema := Required("field")

	tests := []struct {
		name  string
		value interface{}
		blank bool
	}{
		{"empty string", "", true},
		{"nil", nil, true},
		{"false", false, true},
		{"non-empty string", "x", false},
		{"zero number", float64(0), false},
		{"number", float64(9.99), false},
		{"true", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := schema.Check(map[string]interface{}{"field": tt.value})
			if got := len(violations) > 0; got != tt.blank {
				t.Errorf("value %v: blank = %v, want %v", tt.value, got, tt.blank)
			}
		})
	}
}

func TestCheckValidPayload(t *testing.T) {
	data := map[string]interface{}{
		"title":          "Espresso Machine",
		"description":    "Compact 15-bar pump machine",
		"short_notes":    "Ships in 2 days",
		"price":          float64(249.90),
		"discount_price": float64(199.90),
		"category_id":    float64(3),
		"quantity":       float64(12),
	}

	if violations := Product.Check(data); len(violations) != 0 {
		t.Errorf("expected no violations, got %v", violations)
	}
}

func TestResourceSchemas(t *testing.T) {
	// Each schema is shared by its create and update paths; an empty payload
	// must report every required field.
	tests := []struct {
		name   string
		schema *Schema
		fields int
	}{
		{"product", Product, 7},
		{"category", Category, 1},
		{"user", User, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := tt.schema.Check(map[string]interface{}{})
			if len(violations) != tt.fields {
				t.Errorf("expected %d violations, got %d", tt.fields, len(violations))
			}
		})
	}
}
