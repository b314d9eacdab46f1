package modules

import (
	"fmt"
	"strings"
)

// ValidateParams checks params against a tool's InputSchema before dispatch.
// Required fields must be present, non-nil, and (for strings) non-empty.
// Provided values are type-checked against the declared property type; params
// not declared in the schema pass through untouched (lenient).
// Returns the params map or a *ToolError naming the missing fields.
func ValidateParams(schema InputSchema, params map[string]any) (map[string]any, error) {
	if params == nil {
		params = make(map[string]any)
	}

	var missing []string
	for _, key := range schema.Required {
		val, exists := params[key]
		if !exists || val == nil {
			missing = append(missing, key)
			continue
		}
		if s, ok := val.(string); ok && s == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, MissingParamf("%s", strings.Join(missing, ", "))
	}

	for key, val := range params {
		prop, declared := schema.Properties[key]
		if !declared || val == nil {
			continue
		}
		if err := checkType(key, val, prop.Type); err != nil {
			return nil, err
		}
	}

	return params, nil
}

// checkType verifies that val matches the expected JSON Schema type. JSON
// numbers arrive from the decoder as float64.
func checkType(key string, val any, expectedType string) error {
	var ok bool
	switch expectedType {
	case "string":
		_, ok = val.(string)
	case "number", "integer":
		_, ok = val.(float64)
	case "boolean":
		_, ok = val.(bool)
	case "array":
		_, ok = val.([]interface{})
	case "object":
		_, ok = val.(map[string]interface{})
	default:
		// Unknown or empty type: skip check (lenient).
		return nil
	}
	if !ok {
		return MissingParamf("parameter %q: expected %s, got %s", key, expectedType, fmt.Sprintf("%T", val))
	}
	return nil
}
