package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one schema failure, tagged with the JSON path of the
// offending field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// SchemaError is returned when an input document fails shape or type
// validation. It carries every failure found, never a partial graph.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("invalid project graph: %s: %s", e.Errors[0].Path, e.Errors[0].Message)
	}
	return fmt.Sprintf("invalid project graph: %d schema errors", len(e.Errors))
}

// validate is the shared struct validator; field names in error paths come
// from JSON tags.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Load parses and validates a project-graph JSON document. On failure it
// returns a *SchemaError listing every field-path violation.
func Load(data []byte) (*Graph, error) {
	var graph Graph
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&graph); err != nil {
		return nil, &SchemaError{Errors: []FieldError{decodeFieldError(err)}}
	}
	if err := validate.Struct(&graph); err != nil {
		return nil, translateValidationError(err)
	}
	graph.applyDefaults()
	return &graph, nil
}

// LoadFile reads and validates a project-graph JSON file.
func LoadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project graph: %w", err)
	}
	return Load(data)
}

// Dump serializes the graph back to indented JSON. Load(Dump(g)) yields a
// graph equal to g.
func (g *Graph) Dump() ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// applyDefaults materializes the documented field defaults so downstream
// code never re-derives them.
func (g *Graph) applyDefaults() {
	if g.SchemaVersion == "" {
		g.SchemaVersion = SchemaVersion
	}
	for i := range g.Edges {
		cable := g.Edges[i].Cable
		if cable == nil {
			continue
		}
		if cable.QtyPerPhase < 1 {
			cable.QtyPerPhase = 1
		}
		if cable.Installation == "" {
			cable.Installation = "EMT"
		}
		if cable.Insulation == "" {
			cable.Insulation = "THHN"
		}
		if cable.TempRatingC == 0 {
			cable.TempRatingC = 75
		}
	}
}

// SchemaVersion is the project-graph document version this package reads
// and writes.
const SchemaVersion = "0.1.0"

func decodeFieldError(err error) FieldError {
	switch e := err.(type) {
	case *json.UnmarshalTypeError:
		return FieldError{Path: e.Field, Message: fmt.Sprintf("expected %s, got %s", e.Type, e.Value)}
	case *json.SyntaxError:
		return FieldError{Path: "", Message: fmt.Sprintf("malformed JSON at offset %d: %v", e.Offset, e)}
	default:
		return FieldError{Path: "", Message: err.Error()}
	}
}

// translateValidationError converts validator errors to field-path tagged
// schema errors.
func translateValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &SchemaError{Errors: []FieldError{{Message: err.Error()}}}
	}

	fieldErrs := make([]FieldError, 0, len(validationErrs))
	for _, e := range validationErrs {
		path := e.Namespace()
		// Strip the root struct name: "Graph.nodes[0].id" -> "nodes[0].id"
		if idx := strings.Index(path, "."); idx >= 0 {
			path = path[idx+1:]
		}

		var msg string
		switch e.Tag() {
		case "required":
			msg = "field is required"
		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", e.Param())
		case "min":
			msg = fmt.Sprintf("must be at least %s", e.Param())
		case "max":
			msg = fmt.Sprintf("must not exceed %s", e.Param())
		case "gt":
			msg = fmt.Sprintf("must be greater than %s", e.Param())
		case "gte":
			msg = fmt.Sprintf("must be at least %s", e.Param())
		case "lte":
			msg = fmt.Sprintf("must not exceed %s", e.Param())
		default:
			msg = fmt.Sprintf("validation failed (%s)", e.Tag())
		}
		fieldErrs = append(fieldErrs, FieldError{Path: path, Message: msg})
	}
	return &SchemaError{Errors: fieldErrs}
}
