package recipes

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/craftq/internal/store"
)

// authoredSchema constrains player-authored recipe documents.
const authoredSchema = `{
	"type": "object",
	"required": ["name", "profession", "materials", "output_item_kind"],
	"additionalProperties": false,
	"properties": {
		"id": {"type": "string", "pattern": "^[a-z0-9][a-z0-9-]*$"},
		"name": {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"profession": {"type": "string", "minLength": 1},
		"required_level": {"type": "integer", "minimum": 0, "maximum": 9},
		"materials": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["item_kind", "quantity"],
				"additionalProperties": false,
				"properties": {
					"item_kind": {"type": "string", "minLength": 1},
					"quantity": {"type": "integer", "minimum": 1}
				}
			}
		},
		"output_item_kind": {"type": "string", "minLength": 1},
		"output_quantity": {"type": "integer", "minimum": 1},
		"duration_ms": {"type": "integer", "minimum": 0},
		"experience_reward": {"type": "integer", "minimum": 0}
	}
}`

const authoredSchemaURL = "schema://authored-recipe.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func authoredRecipeSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(authoredSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(authoredSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(authoredSchemaURL)
	})
	return compiledSchema, compileErr
}

// ParseAuthored validates a player-authored recipe document and converts
// it into a Recipe. A missing id is derived from the name.
func ParseAuthored(raw []byte) (Recipe, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Recipe{}, fmt.Errorf("%w: invalid JSON: %v", ErrInvalidRecipe, err)
	}

	schema, err := authoredRecipeSchema()
	if err != nil {
		return Recipe{}, fmt.Errorf("compile authored recipe schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return Recipe{}, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}

	var data store.RecipeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return Recipe{}, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}
	if strings.TrimSpace(data.ID) == "" {
		data.ID = IDFromName(data.Name)
	}
	data.Authored = true

	r := FromData(data)
	if err := r.Validate(); err != nil {
		return Recipe{}, err
	}
	return r, nil
}
