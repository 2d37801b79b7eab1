// Package openapi holds the subset of the OpenAPI 3 document model that
// the Stripe spec uses and the generator reads. It is intentionally not a
// general OpenAPI library; fields the generator never looks at are left
// out.
package openapi

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const schemaRefPrefix = "#/components/schemas/"

// Spec is a parsed spec3 document.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       Info                 `json:"info"`
	Components Components           `json:"components"`
	Paths      map[string]*PathItem `json:"paths"`
}

type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type Components struct {
	Schemas map[string]*Schema `json:"schemas"`
}

// Schema is one schema node. Stripe's spec nests these for properties,
// array items, and union branches.
type Schema struct {
	Ref         string             `json:"$ref,omitempty"`
	Type        string             `json:"type,omitempty"`
	Format      string             `json:"format,omitempty"`
	Description string             `json:"description,omitempty"`
	Nullable    bool               `json:"nullable,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	AnyOf       []*Schema          `json:"anyOf,omitempty"`
	OneOf       []*Schema          `json:"oneOf,omitempty"`

	// Stripe vendor extensions.
	ExpansionResources *ExpansionResources `json:"x-expansionResources,omitempty"`
	ResourceID         string              `json:"x-resourceId,omitempty"`
}

// ExpansionResources marks a string-or-object expandable field and names
// the object schemas it can expand into.
type ExpansionResources struct {
	OneOf []*Schema `json:"oneOf"`
}

type PathItem struct {
	Get    *Operation `json:"get,omitempty"`
	Post   *Operation `json:"post,omitempty"`
	Delete *Operation `json:"delete,omitempty"`
}

type Operation struct {
	OperationID string               `json:"operationId,omitempty"`
	Description string               `json:"description,omitempty"`
	Parameters  []*Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody         `json:"requestBody,omitempty"`
	Responses   map[string]*Response `json:"responses,omitempty"`
}

type Parameter struct {
	Name     string  `json:"name"`
	In       string  `json:"in"`
	Required bool    `json:"required,omitempty"`
	Schema   *Schema `json:"schema,omitempty"`
}

type RequestBody struct {
	Required bool                  `json:"required,omitempty"`
	Content  map[string]*MediaType `json:"content,omitempty"`
}

type Response struct {
	Content map[string]*MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema *Schema `json:"schema,omitempty"`
}

// Load decodes a spec3 document from r.
func Load(r io.Reader) (*Spec, error) {
	var spec Spec
	dec := json.NewDecoder(r)
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("openapi: decode spec: %w", err)
	}
	if len(spec.Components.Schemas) == 0 {
		return nil, fmt.Errorf("openapi: spec has no component schemas")
	}
	return &spec, nil
}

// RefName extracts the schema name from a $ref, or "" when the reference
// does not point into components.schemas.
func RefName(ref string) string {
	name, ok := strings.CutPrefix(ref, schemaRefPrefix)
	if !ok {
		return ""
	}
	return name
}

// Resolve follows s through a $ref into the component table. It returns s
// unchanged when s is not a reference.
func (spec *Spec) Resolve(s *Schema) (*Schema, error) {
	if s == nil || s.Ref == "" {
		return s, nil
	}
	name := RefName(s.Ref)
	if name == "" {
		return nil, fmt.Errorf("openapi: unsupported $ref %q", s.Ref)
	}
	target, ok := spec.Components.Schemas[name]
	if !ok {
		return nil, fmt.Errorf("openapi: dangling $ref %q", s.Ref)
	}
	return target, nil
}

// SuccessSchema returns the schema of the 200 application/json response,
// or nil when the operation has none.
func (op *Operation) SuccessSchema() *Schema {
	res, ok := op.Responses["200"]
	if !ok || res.Content == nil {
		return nil
	}
	mt, ok := res.Content["application/json"]
	if !ok {
		return nil
	}
	return mt.Schema
}

// FormSchema returns the x-www-form-urlencoded request body schema, or
// nil when the operation takes no body.
func (op *Operation) FormSchema() *Schema {
	if op.RequestBody == nil || op.RequestBody.Content == nil {
		return nil
	}
	mt, ok := op.RequestBody.Content["application/x-www-form-urlencoded"]
	if !ok {
		return nil
	}
	return mt.Schema
}
