package openapi

import (
	"strings"
	"testing"
)

const sampleSpec = `{
	"openapi": "3.0.0",
	"info": {"title": "Stripe API", "version": "2024-06-20"},
	"components": {"schemas": {
		"customer": {
			"type": "object",
			"properties": {
				"id": {"type": "string"},
				"default_source": {
					"anyOf": [{"$ref": "#/components/schemas/card"}],
					"x-expansionResources": {"oneOf": [{"$ref": "#/components/schemas/card"}]}
				}
			},
			"required": ["id"]
		},
		"card": {"type": "object", "properties": {"id": {"type": "string"}}}
	}},
	"paths": {
		"/v1/customers": {
			"get": {
				"parameters": [{"name": "limit", "in": "query", "schema": {"type": "integer"}}],
				"responses": {"200": {"content": {"application/json": {"schema": {
					"type": "object",
					"properties": {
						"data": {"type": "array", "items": {"$ref": "#/components/schemas/customer"}},
						"has_more": {"type": "boolean"}
					}
				}}}}}
			},
			"post": {
				"requestBody": {"content": {"application/x-www-form-urlencoded": {"schema": {
					"type": "object",
					"properties": {"email": {"type": "string"}}
				}}}},
				"responses": {"200": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/customer"}}}}}
			}
		}
	}
}`

func TestLoad(t *testing.T) {
	spec, err := Load(strings.NewReader(sampleSpec))
	if err != nil {
		t.Fatal(err)
	}
	if spec.Info.Version != "2024-06-20" {
		t.Fatalf("version = %q", spec.Info.Version)
	}
	if len(spec.Components.Schemas) != 2 {
		t.Fatalf("schemas = %d", len(spec.Components.Schemas))
	}
}

func TestLoadRejectsEmpty(t *testing.T) {
	if _, err := Load(strings.NewReader(`{"openapi":"3.0.0"}`)); err == nil {
		t.Fatal("expected error for a spec without schemas")
	}
	if _, err := Load(strings.NewReader(`not json`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestRefName(t *testing.T) {
	if got := RefName("#/components/schemas/checkout.session"); got != "checkout.session" {
		t.Fatalf("RefName = %q", got)
	}
	if got := RefName("#/components/parameters/limit"); got != "" {
		t.Fatalf("RefName outside schemas = %q", got)
	}
}

func TestResolve(t *testing.T) {
	spec, err := Load(strings.NewReader(sampleSpec))
	if err != nil {
		t.Fatal(err)
	}

	resolved, err := spec.Resolve(&Schema{Ref: "#/components/schemas/card"})
	if err != nil {
		t.Fatal(err)
	}
	if resolved.Type != "object" {
		t.Fatalf("resolved = %+v", resolved)
	}

	if _, err := spec.Resolve(&Schema{Ref: "#/components/schemas/missing"}); err == nil {
		t.Fatal("expected dangling ref error")
	}

	passthrough := &Schema{Type: "string"}
	got, err := spec.Resolve(passthrough)
	if err != nil || got != passthrough {
		t.Fatalf("non-ref schema changed: %v, %v", got, err)
	}
}

func TestOperationSchemas(t *testing.T) {
	spec, err := Load(strings.NewReader(sampleSpec))
	if err != nil {
		t.Fatal(err)
	}
	item := spec.Paths["/v1/customers"]

	if s := item.Get.SuccessSchema(); s == nil || s.Properties["data"] == nil {
		t.Fatalf("GET success schema = %+v", s)
	}
	if s := item.Get.FormSchema(); s != nil {
		t.Fatal("GET should have no form body")
	}
	if s := item.Post.FormSchema(); s == nil || s.Properties["email"] == nil {
		t.Fatalf("POST form schema = %+v", s)
	}
	if got := RefName(item.Post.SuccessSchema().Ref); got != "customer" {
		t.Fatalf("POST success ref = %q", got)
	}
}
