package codegen

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/stripekit/stripekit/internal/openapi"
)

// Emitter renders selected components and their API operations into Go
// source files, one file per resource.
type Emitter struct {
	cfg    *Config
	cat    *Catalog
	sink   OutputSink
	idents *identTable
}

func NewEmitter(cfg *Config, cat *Catalog, sink OutputSink) *Emitter {
	return &Emitter{cfg: cfg, cat: cat, sink: sink, idents: newIdentTable()}
}

// Emit runs the full generation pass.
func (e *Emitter) Emit(ctx context.Context) error {
	comps, err := e.cfg.Selected(e.cat)
	if err != nil {
		return err
	}
	if err := BuildGraph(e.cfg, comps).CheckAcyclic(); err != nil {
		return err
	}

	for _, comp := range comps {
		if comp.Path.IsDeleted() {
			// Tombstones fold into the live resource's MaybeDeleted
			// retrieve result; no standalone file.
			continue
		}
		if err := e.emitComponent(ctx, comp); err != nil {
			return fmt.Errorf("codegen: emit %s: %w", comp.Path, err)
		}
	}
	return nil
}

func (e *Emitter) emitComponent(ctx context.Context, comp *Component) error {
	model, err := e.buildFileModel(comp)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, model); err != nil {
		return err
	}

	// File names drop separators so checkout.session and currency_option
	// land as checkoutsession.go and currencyoption.go.
	path := strings.NewReplacer(".", "", "_", "").Replace(comp.Path.String()) + ".go"
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("format generated source: %w", err)
	}
	return e.sink.WriteFile(ctx, path, formatted)
}

// fileModel is the template input for one generated file.
type fileModel struct {
	Package string
	Module  string
	Types   []typeModel
	Ops     []opModel
}

type typeModel struct {
	Kind       Kind
	Name       string
	Doc        string
	IDType     string // object: name of the ID type, "" when none
	IDPrefixes []string
	Fields     []fieldModel // object
	Values     []enumValue  // enum
	Variants   []string     // union
	GoType     string       // alias
}

type fieldModel struct {
	Name string
	Type string
	Tag  string
}

type enumValue struct {
	Name  string
	Value string
}

type opModel struct {
	Name     string
	Doc      string
	Method   string
	Path     string // Go expression for the request path
	HasID    bool
	IDType   string
	IDPrefix []string
	Return   string // type parameter passed to Do
	List     bool
	Item     string // element type for list operations
	Params   []paramModel
}

type paramModel struct {
	Name     string // setter name
	Field    string // struct field name
	Type     string
	Tag      string
	Variadic bool
}

func (e *Emitter) buildFileModel(comp *Component) (*fileModel, error) {
	model := &fileModel{Package: e.cfg.PackageOf(comp.Path), Module: e.cfg.Module}

	name := e.idents.claim(GoName(comp.Path.String()), comp.Path)
	switch comp.Kind {
	case KindObject:
		tm, err := e.buildObject(comp, name)
		if err != nil {
			return nil, err
		}
		model.Types = append(model.Types, tm)
		ops, err := e.buildOps(comp, name)
		if err != nil {
			return nil, err
		}
		model.Ops = ops
	case KindEnum:
		model.Types = append(model.Types, typeModel{
			Kind:   KindEnum,
			Name:   name,
			Doc:    docLine(comp.Schema.Description, name),
			Values: enumValues(name, comp.Schema.Enum),
		})
	case KindUnion:
		tm := typeModel{Kind: KindUnion, Name: name, Doc: docLine(comp.Schema.Description, name)}
		for _, branch := range unionBranches(comp.Schema) {
			if ref := openapi.RefName(branch.Ref); ref != "" {
				tm.Variants = append(tm.Variants, GoName(ref))
			}
		}
		model.Types = append(model.Types, tm)
	case KindAlias:
		model.Types = append(model.Types, typeModel{
			Kind:   KindAlias,
			Name:   name,
			Doc:    docLine(comp.Schema.Description, name),
			GoType: scalarType(comp.Schema),
		})
	}
	return model, nil
}

func (e *Emitter) buildObject(comp *Component, name string) (typeModel, error) {
	tm := typeModel{
		Kind: KindObject,
		Name: name,
		Doc:  docLine(comp.Schema.Description, name),
	}
	if prefixes := e.cfg.IDPrefixes[comp.Path.String()]; len(prefixes) > 0 {
		tm.IDType = name + "ID"
		tm.IDPrefixes = prefixes
	}

	for _, prop := range sortedKeys(comp.Schema.Properties) {
		schema := comp.Schema.Properties[prop]
		fieldType, err := e.goType(prop, schema, tm.IDType)
		if err != nil {
			return tm, fmt.Errorf("property %q: %w", prop, err)
		}
		tag := prop
		if !contains(comp.Schema.Required, prop) {
			tag += ",omitempty"
		}
		tm.Fields = append(tm.Fields, fieldModel{
			Name: GoName(prop),
			Type: fieldType,
			Tag:  tag,
		})
	}
	return tm, nil
}

// goType maps a property schema to the Go type used in a response struct.
func (e *Emitter) goType(prop string, s *openapi.Schema, idType string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("missing schema")
	}
	if s.ExpansionResources != nil {
		for _, branch := range s.ExpansionResources.OneOf {
			if ref := openapi.RefName(branch.Ref); ref != "" {
				return "stripekit.Expandable[" + GoName(ref) + "]", nil
			}
		}
	}
	if ref := openapi.RefName(s.Ref); ref != "" {
		target := e.cat.Components[ComponentPath(ref)]
		if target != nil && target.Kind == KindObject {
			return "*" + GoName(ref), nil
		}
		return GoName(ref), nil
	}
	if len(s.AnyOf) > 0 || len(s.OneOf) > 0 {
		// Inline unions carry no discriminant we can dispatch on; keep
		// the raw bytes.
		return "json.RawMessage", nil
	}

	switch s.Type {
	case "string":
		switch prop {
		case "id":
			if idType != "" {
				return idType, nil
			}
			return "string", nil
		case "currency":
			return "stripekit.Currency", nil
		}
		return "string", nil
	case "integer":
		if s.Format == "unix-time" || prop == "created" || prop == "updated" {
			return "stripekit.Timestamp", nil
		}
		return "int64", nil
	case "number":
		return "float64", nil
	case "boolean":
		return "bool", nil
	case "array":
		item, err := e.goType(prop, s.Items, "")
		if err != nil {
			return "", err
		}
		return "[]" + item, nil
	case "object":
		if prop == "metadata" {
			return "stripekit.Metadata", nil
		}
		if ref := listItemRef(s); ref != "" {
			return "*stripekit.List[" + GoName(ref) + "]", nil
		}
		// Anonymous nested objects stay raw; promoting every one of them
		// to a named type buries the resource types in noise.
		return "json.RawMessage", nil
	case "":
		return "json.RawMessage", nil
	default:
		return "", fmt.Errorf("unsupported schema type %q", s.Type)
	}
}

// buildOps scans paths for operations whose success payload is this
// component (or a list of it) and builds operation models.
func (e *Emitter) buildOps(comp *Component, name string) ([]opModel, error) {
	var ops []opModel
	for _, rawPath := range sortedKeys(e.cat.Spec.Paths) {
		item := e.cat.Spec.Paths[rawPath]
		itemPath := strings.Contains(rawPath, "{")
		for method, op := range map[string]*openapi.Operation{
			"GET":    item.Get,
			"POST":   item.Post,
			"DELETE": item.Delete,
		} {
			if op == nil {
				continue
			}
			kind, isList := e.matchOp(comp, op, method, itemPath)
			if kind == "" {
				continue
			}
			m, err := e.buildOp(comp, name, kind, method, rawPath, op, isList)
			if err != nil {
				return nil, err
			}
			ops = append(ops, m)
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops, nil
}

// matchOp decides whether op belongs to comp and what verb it carries.
func (e *Emitter) matchOp(comp *Component, op *openapi.Operation, method string, itemPath bool) (string, bool) {
	success := op.SuccessSchema()
	if success == nil {
		return "", false
	}
	ref := openapi.RefName(success.Ref)
	if ref == "" {
		if itemRef := listItemRef(success); itemRef == string(comp.Path) && method == "GET" && !itemPath {
			return "List", true
		}
		return "", false
	}
	target := ComponentPath(ref)
	if target != comp.Path && target.LiveCounterpart() != comp.Path {
		return "", false
	}
	switch {
	case method == "GET" && itemPath:
		return "Retrieve", false
	case method == "POST" && !itemPath:
		return "Create", false
	case method == "POST" && itemPath:
		return "Update", false
	case method == "DELETE" && itemPath:
		return "Delete", false
	}
	return "", false
}

func (e *Emitter) buildOp(comp *Component, name, kind, method, rawPath string, op *openapi.Operation, isList bool) (opModel, error) {
	m := opModel{
		Method: method,
		HasID:  strings.Contains(rawPath, "{"),
		List:   isList,
	}
	switch kind {
	case "List":
		m.Name = "List" + plural(name)
		m.Return = "stripekit.List[" + name + "]"
		m.Item = name
	case "Delete":
		m.Name = "Delete" + name
		m.Return = "stripekit.Tombstone"
	case "Retrieve":
		m.Name = "Retrieve" + name
		m.Return = name
		if _, ok := e.cat.Components[tombstonePath(comp.Path)]; ok {
			m.Return = "stripekit.MaybeDeleted[" + name + "]"
		}
	default:
		m.Name = kind + name
		m.Return = name
	}
	m.Doc = m.Name + " " + strings.ToLower(kind) + "s " + articleFor(name) + " " + strings.ToLower(strings.Join(splitCamel(name), " ")) + "."
	m.IDPrefix = e.cfg.IDPrefixes[comp.Path.String()]
	if len(m.IDPrefix) > 0 {
		m.IDType = name + "ID"
	} else {
		// No prefix set configured, so no dedicated id type exists and
		// only the basic well-formedness of the id can be checked.
		m.IDType = "string"
	}

	// Path template: the single {param} becomes the escaped ID.
	m.Path = fmt.Sprintf("%q", rawPath)
	if m.HasID {
		i := strings.IndexByte(rawPath, '{')
		m.Path = fmt.Sprintf("%q+url.PathEscape(string(op.id))", rawPath[:i])
	}

	params, err := e.buildParams(op, method)
	if err != nil {
		return m, err
	}
	m.Params = params
	return m, nil
}

// buildParams maps query parameters (GET) or form body properties (POST)
// to setter models. Unsupported shapes are skipped; callers reach them
// through raw query customization.
func (e *Emitter) buildParams(op *openapi.Operation, method string) ([]paramModel, error) {
	var params []paramModel
	add := func(name string, s *openapi.Schema) {
		if s == nil || name == "expand" {
			return
		}
		p := paramModel{Name: GoName(name), Field: GoName(name), Tag: name + ",omitzero"}
		switch s.Type {
		case "string":
			p.Type = "string"
		case "integer":
			p.Type = "int64"
		case "boolean":
			p.Type = "bool"
		case "array":
			if s.Items == nil || s.Items.Type != "string" {
				return
			}
			p.Type = "[]string"
			p.Variadic = true
		default:
			return
		}
		params = append(params, p)
	}

	if method == "GET" {
		for _, par := range op.Parameters {
			if par.In == "query" {
				add(par.Name, par.Schema)
			}
		}
	} else if form := op.FormSchema(); form != nil {
		for _, name := range sortedKeys(form.Properties) {
			add(name, form.Properties[name])
		}
	}
	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })
	return params, nil
}

func tombstonePath(p ComponentPath) ComponentPath {
	s := string(p)
	i := strings.LastIndexByte(s, '.') + 1
	return ComponentPath(s[:i] + deletedPrefix + s[i:])
}

// listItemRef returns the item component name when s is a Stripe list
// envelope (object with data array of refs), else "".
func listItemRef(s *openapi.Schema) string {
	if s == nil || s.Properties == nil {
		return ""
	}
	data, ok := s.Properties["data"]
	if !ok || data.Type != "array" || data.Items == nil {
		return ""
	}
	if _, ok := s.Properties["has_more"]; !ok {
		return ""
	}
	return openapi.RefName(data.Items.Ref)
}

func unionBranches(s *openapi.Schema) []*openapi.Schema {
	if len(s.OneOf) > 0 {
		return s.OneOf
	}
	return s.AnyOf
}

func enumValues(typeName string, values []string) []enumValue {
	out := make([]enumValue, 0, len(values))
	for _, v := range values {
		out = append(out, enumValue{Name: EnumValueName(typeName, v), Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func scalarType(s *openapi.Schema) string {
	switch s.Type {
	case "integer":
		return "int64"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	default:
		return "string"
	}
}

// docLine reduces a spec description to its first sentence, falling back
// to the type name.
func docLine(desc, name string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return name + " is a generated API type."
	}
	if i := strings.Index(desc, ". "); i >= 0 {
		desc = desc[:i+1]
	}
	return strings.ReplaceAll(desc, "\n", " ")
}

func plural(name string) string {
	if strings.HasSuffix(name, "s") {
		return name + "es"
	}
	return name + "s"
}

func articleFor(name string) string {
	switch name[0] {
	case 'A', 'E', 'I', 'O', 'U':
		return "an"
	}
	return "a"
}

func splitCamel(name string) []string {
	var words []string
	start := 0
	for i := 1; i < len(name); i++ {
		if name[i] >= 'A' && name[i] <= 'Z' && !(name[i-1] >= 'A' && name[i-1] <= 'Z') {
			words = append(words, name[start:i])
			start = i
		}
	}
	return append(words, name[start:])
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by stripegen. DO NOT EDIT.

package {{.Package}}

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"{{.Module}}"
)

{{range .Types}}
{{- if eq .Kind 0}}{{template "object" .}}{{end}}
{{- if eq .Kind 1}}{{template "union" .}}{{end}}
{{- if eq .Kind 2}}{{template "enum" .}}{{end}}
{{- if eq .Kind 3}}{{template "alias" .}}{{end}}
{{end}}
{{range .Ops}}{{template "op" .}}
{{end}}
{{define "object"}}
{{- if .IDType}}
// {{.IDType}} identifies a {{.Name}}.
type {{.IDType}} string

func (id {{.IDType}}) String() string { return string(id) }

func (id *{{.IDType}}) UnmarshalJSON(data []byte) error {
	return stripekit.UnmarshalID(data, (*string)(id){{range .IDPrefixes}}, "{{.}}"{{end}})
}
{{end}}
// {{.Doc}}
type {{.Name}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}} ` + "`json:\"{{.Tag}}\"`" + `
{{- end}}
}

func (v {{.Name}}) ObjectID() string { {{if .IDType}}return string(v.ID){{else}}return ""{{end}} }
{{end}}
{{define "enum"}}
// {{.Doc}}
type {{.Name}} string

const (
{{- range .Values}}
	{{.Name}} {{$.Name}} = "{{.Value}}"
{{- end}}
)
{{end}}
{{define "union"}}
// {{.Doc}} The raw bytes are kept so callers dispatch on the object
// discriminant themselves{{if .Variants}}; possible shapes: {{range $i, $v := .Variants}}{{if $i}}, {{end}}{{$v}}{{end}}{{end}}.
type {{.Name}} json.RawMessage
{{end}}
{{define "alias"}}
// {{.Doc}}
type {{.Name}} {{.GoType}}
{{end}}
{{define "op"}}
// {{.Doc}}
type {{.Name}} struct {
{{- if .HasID}}
	id {{.IDType}}
{{- end}}
	params {{.Name}}Params
	strategy *stripekit.RequestStrategy
}

type {{.Name}}Params struct {
{{- range .Params}}
	{{.Field}} {{.Type}} ` + "`form:\"{{.Tag}}\"`" + `
{{- end}}
	Expand []string ` + "`form:\"expand,omitzero\"`" + `
}

func New{{.Name}}({{if .HasID}}id {{.IDType}}{{end}}) *{{.Name}} {
	return &{{.Name}}{ {{- if .HasID}}id: id{{end -}} }
}
{{range .Params}}
func (op *{{$.Name}}) {{.Name}}({{if .Variadic}}v ...string{{else}}v {{.Type}}{{end}}) *{{$.Name}} {
	{{if .Variadic}}op.params.{{.Field}} = append(op.params.{{.Field}}, v...){{else}}op.params.{{.Field}} = v{{end}}
	return op
}
{{end}}
func (op *{{.Name}}) Expand(paths ...string) *{{.Name}} {
	op.params.Expand = append(op.params.Expand, paths...)
	return op
}

func (op *{{.Name}}) Customize(s stripekit.RequestStrategy) *{{.Name}} {
	op.strategy = &s
	return op
}

func (op *{{.Name}}) Build() (*stripekit.Request, error) {
{{- if and .HasID .IDPrefix}}
	if err := stripekit.CheckID(string(op.id){{range .IDPrefix}}, "{{.}}"{{end}}); err != nil {
		return nil, err
	}
{{- end}}
	req, err := stripekit.NewRequest(http.Method{{if eq .Method "GET"}}Get{{else if eq .Method "POST"}}Post{{else}}Delete{{end}}, {{.Path}}, op.params)
	if err != nil {
		return nil, err
	}
	req.Strategy = op.strategy
	return req, nil
}

func (op *{{.Name}}) Send(ctx context.Context, c *stripekit.Client) (*{{.Return}}, error) {
	return stripekit.{{if .List}}DoList[{{.Item}}]{{else}}Do[{{.Return}}]{{end}}(ctx, c, op)
}

func (op *{{.Name}}) SendBlocking(c *stripekit.Client) (*{{.Return}}, error) {
	return stripekit.DoBlocking[{{.Return}}](c, op)
}
{{end}}`))
