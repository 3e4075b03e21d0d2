// Package schema checks a JSON Schema document by validating the empty
// object against it. It reports whether a schema is well formed and which
// constraints an empty payload already violates.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"
)

const resourceURL = "schema.json"

var ErrInvalidSchema = errors.New("invalid schema")

// Issue is one leaf validation failure.
type Issue struct {
	Location string // JSON pointer into the instance, "" for the root
	Keyword  string // JSON pointer into the schema
	Message  string
}

// Normalize returns data as JSON. YAML documents are converted; JSON passes
// through untouched.
func Normalize(data []byte) ([]byte, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidSchema)
	}
	if json.Valid(data) {
		return data, nil
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return out, nil
}

// Compile parses and compiles a Draft 7 schema.
func Compile(data []byte) (*jsonschema.Schema, error) {
	doc, err := Normalize(data)
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7
	if err := c.AddResource(resourceURL, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	s, err := c.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return s, nil
}

// Check compiles the schema and validates {} against it. Issues are sorted by
// instance location, then message.
func Check(data []byte) ([]Issue, error) {
	s, err := Compile(data)
	if err != nil {
		return nil, err
	}
	err = s.Validate(map[string]any{})
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}

	var issues []Issue
	collect(ve, &issues)
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Location != issues[j].Location {
			return issues[i].Location < issues[j].Location
		}
		return issues[i].Message < issues[j].Message
	})
	return issues, nil
}

func collect(ve *jsonschema.ValidationError, out *[]Issue) {
	if len(ve.Causes) == 0 {
		*out = append(*out, Issue{
			Location: ve.InstanceLocation,
			Keyword:  ve.KeywordLocation,
			Message:  ve.Message,
		})
		return
	}
	for _, c := range ve.Causes {
		collect(c, out)
	}
}
