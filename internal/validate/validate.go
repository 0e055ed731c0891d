package validate

import "fmt"

// Violation is one required-field failure, reported as a field/message pair
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("[%s]: %s", v.Field, v.Message)
}

const blankMessage = "This value should not be blank."

// Schema is a declarative required-field set for one resource, shared by its
// create and update paths.
type Schema struct {
	required []string
}

// Required declares a schema whose listed fields must be present and non-blank
func Required(fields ...string) *Schema {
	return &Schema{required: fields}
}

// Check collects every violation in the given payload. It never fails fast:
// all missing or blank fields are reported together.
func (s *Schema) Check(data map[string]interface{}) []Violation {
	var violations []Violation
	for _, field := range s.required {
		value, ok := data[field]
		if !ok || isBlank(value) {
			violations = append(violations, Violation{Field: field, Message: blankMessage})
		}
	}
	return violations
}

// Messages formats violations as "[field]: message" strings for the error body
func Messages(violations []Violation) []string {
	messages := make([]string, 0, len(violations))
	for _, v := range violations {
		messages = append(messages, v.String())
	}
	return messages
}

// isBlank mirrors the not-blank constraint of the original validator: nil,
// empty string, and false are blank; zero numbers are not.
func isBlank(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	default:
		return false
	}
}

// Per-resource schemas. Each is shared by the resource's create and update
// handlers.
var (
	Product  = Required("title", "description", "short_notes", "price", "discount_price", "category_id", "quantity")
	Category = Required("name")
	User     = Required("name", "email")
)
