package stripekit

import (
	"io"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Values is an ordered multi-map of form keys to values. Order is
// preserved so that a given parameter set always encodes to the same body,
// which keeps idempotent retries byte-identical.
type Values struct {
	pairs []formPair
}

type formPair struct {
	key   string
	value string
}

// Add appends a key/value pair.
func (v *Values) Add(key, value string) {
	v.pairs = append(v.pairs, formPair{key: key, value: value})
}

// Set replaces the first pair with the given key, or appends one.
func (v *Values) Set(key, value string) {
	for i := range v.pairs {
		if v.pairs[i].key == key {
			v.pairs[i].value = value
			return
		}
	}
	v.Add(key, value)
}

// Get returns the first value for key.
func (v *Values) Get(key string) (string, bool) {
	for _, p := range v.pairs {
		if p.key == key {
			return p.value, true
		}
	}
	return "", false
}

// Empty reports whether no pairs are present.
func (v *Values) Empty() bool { return v == nil || len(v.pairs) == 0 }

// Encode renders the pairs as an x-www-form-urlencoded string.
func (v *Values) Encode() string {
	if v.Empty() {
		return ""
	}
	var b strings.Builder
	for i, p := range v.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// Reader returns a reader over the encoded form, for use as a request body.
func (v *Values) Reader() io.Reader { return strings.NewReader(v.Encode()) }

// Clone returns an independent copy.
func (v *Values) Clone() *Values {
	if v == nil {
		return &Values{}
	}
	c := &Values{pairs: make([]formPair, len(v.pairs))}
	copy(c.pairs, v.pairs)
	return c
}

// EncodeForm flattens params into form pairs using `form` struct tags.
// Nested structs and maps use bracket notation (a[b][c]=v), slices use
// indexed brackets (items[0][price]=p). Nil pointers are omitted entirely;
// fields tagged `omitzero` are omitted at their zero value.
func EncodeForm(params any) (*Values, error) {
	v := &Values{}
	if params == nil {
		return v, nil
	}
	if err := encodeValue(v, "", reflect.ValueOf(params)); err != nil {
		return nil, err
	}
	return v, nil
}

func formKey(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "[" + name + "]"
}

func encodeValue(v *Values, key string, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return encodeValue(v, key, rv.Elem())
	case reflect.Struct:
		return encodeStruct(v, key, rv)
	case reflect.Map:
		return encodeMap(v, key, rv)
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			idx := key + "[" + strconv.Itoa(i) + "]"
			if err := encodeValue(v, idx, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Bool:
		v.Add(key, strconv.FormatBool(rv.Bool()))
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.Add(key, strconv.FormatInt(rv.Int(), 10))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.Add(key, strconv.FormatUint(rv.Uint(), 10))
		return nil
	case reflect.Float32, reflect.Float64:
		v.Add(key, strconv.FormatFloat(rv.Float(), 'f', -1, 64))
		return nil
	case reflect.String:
		v.Add(key, rv.String())
		return nil
	default:
		return clientErrorf("cannot encode %s value at form key %q", rv.Kind(), key)
	}
}

func encodeStruct(v *Values, key string, rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		// Unexported embedded structs still flatten; encoding only reads
		// through kind accessors, never Interface.
		if !field.IsExported() && !field.Anonymous {
			continue
		}
		tag := field.Tag.Get("form")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fv := rv.Field(i)
		if name == "" {
			// Untagged embedded structs flatten into the parent key,
			// which is how shared parameter sets (ListParams) compose.
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if field.Anonymous && ft.Kind() == reflect.Struct {
				if err := encodeValue(v, key, fv); err != nil {
					return err
				}
			}
			continue
		}
		if hasFormOpt(opts, "omitzero") && fv.IsZero() {
			continue
		}
		if err := encodeValue(v, formKey(key, name), fv); err != nil {
			return err
		}
	}
	return nil
}

func encodeMap(v *Values, key string, rv reflect.Value) error {
	if rv.Type().Key().Kind() != reflect.String {
		return clientErrorf("cannot encode map with %s keys at form key %q", rv.Type().Key().Kind(), key)
	}
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := encodeValue(v, formKey(key, k), rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))); err != nil {
			return err
		}
	}
	return nil
}

func hasFormOpt(opts, want string) bool {
	for opts != "" {
		var o string
		o, opts, _ = strings.Cut(opts, ",")
		if o == want {
			return true
		}
	}
	return false
}
