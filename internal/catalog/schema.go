package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"playground/internal/models"
)

var (
	ErrStatus      = errors.New("manifest request failed")
	ErrSchema      = errors.New("manifest does not match schema")
	ErrDuplicateID = errors.New("manifest has duplicate id")
)

const manifestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "description", "tags", "status", "path"],
    "properties": {
      "id":          {"type": "string", "minLength": 1},
      "title":       {"type": "string"},
      "description": {"type": "string"},
      "tags":        {"type": "array", "items": {"type": "string"}},
      "status":      {"type": "string"},
      "path":        {"type": "string"},
      "icon":        {"type": "string"},
      "embedMarkup": {"type": "string"},
      "iframe":      {"type": "string"}
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(manifestSchema)

// Validate checks a manifest body and decodes it into entries.
func Validate(data []byte) ([]models.GameEntry, error) {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		// the document itself could not be parsed
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrSchema, strings.Join(msgs, "; "))
	}

	var entries []models.GameEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return entries, nil
}
