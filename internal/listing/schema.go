package listing

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchemaJSON mirrors the response schema sent to the model. The model
// must return propertyName, price and location; every other key may come back
// empty but has to be the right type when present.
const recordSchemaJSON = `{
  "type": "object",
  "required": ["propertyName", "price", "location"],
  "properties": {
    "propertyName":   {"type": "string"},
    "price":          {"type": "string"},
    "location":       {"type": "string"},
    "access":         {"type": "string"},
    "layout":         {"type": "string"},
    "size":           {"type": "string"},
    "builtYear":      {"type": "string"},
    "floor":          {"type": "string"},
    "managementFee":  {"type": "string"},
    "repairFund":     {"type": "string"},
    "coverageRatio":  {"type": "string"},
    "floorAreaRatio": {"type": "string"},
    "restrictions":   {"type": "string"},
    "facilities":     {"type": "string"},
    "description":    {"type": "string"},
    "features":       {"type": "array", "items": {"type": "string"}}
  }
}`

var recordSchema = jsonschema.MustCompileString("listing.schema.json", recordSchemaJSON)

// ValidatePayload checks that data is a JSON object matching the record
// schema. It returns an error describing the first violation found.
func ValidatePayload(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if err := recordSchema.Validate(v); err != nil {
		return fmt.Errorf("payload does not match listing schema: %w", err)
	}
	return nil
}

// ParseRecord validates and decodes a JSON payload into a Record.
func ParseRecord(data []byte) (*Record, error) {
	if err := ValidatePayload(data); err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	rec.Normalize()
	return &rec, nil
}
