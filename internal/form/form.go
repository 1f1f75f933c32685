// Package form bridges the console's labeled input fields and the
// daemon's nested configuration object.
package form

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ragdeck/ragdeck/internal/confmap"
)

// Kind declares how a field's raw value is coerced during collection.
type Kind int

const (
	Text Kind = iota
	Number
	Checkbox
)

// Field is one labeled input on the configuration surface. Name is the
// dot-separated path of the configuration leaf it edits.
type Field struct {
	Name    string
	Label   string
	Kind    Kind
	Value   string
	Checked bool
}

// Form is the declared field table for the configuration surface. The
// table is fixed at construction and malformed names are rejected up
// front rather than discovered while collecting.
type Form struct {
	fields []*Field
}

// New validates the declared fields and builds the form. Every name
// must be non-empty with no empty path segments. Duplicate names are
// legal; see Collect and Fill for the tie-breaks.
func New(fields ...*Field) (*Form, error) {
	for _, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return nil, fmt.Errorf("field %q has an empty name", f.Label)
		}
		for _, seg := range strings.Split(name, ".") {
			if seg == "" {
				return nil, fmt.Errorf("field name %q has an empty path segment", f.Name)
			}
		}
		f.Name = name
	}
	return &Form{fields: fields}, nil
}

// Fields returns the declared fields in traversal order.
func (f *Form) Fields() []*Field {
	return f.fields
}

// Lookup returns the first field whose name equals path.
func (f *Form) Lookup(path string) (*Field, bool) {
	for _, fl := range f.fields {
		if fl.Name == path {
			return fl, true
		}
	}
	return nil, false
}

// Collect reads every field into a configuration object. Checkboxes
// become booleans; numeric fields parse to float64, falling back to
// the raw string when the parse fails. Fields sharing a name collide
// and the last writer in traversal order wins.
func (f *Form) Collect() confmap.Object {
	cfg := confmap.Object{}
	for _, fl := range f.fields {
		var value any
		switch fl.Kind {
		case Checkbox:
			value = fl.Checked
		case Number:
			if n, err := strconv.ParseFloat(strings.TrimSpace(fl.Value), 64); err == nil {
				value = n
			} else {
				value = fl.Value
			}
		default:
			value = fl.Value
		}
		if !strings.Contains(fl.Name, ".") {
			cfg[fl.Name] = value
			continue
		}
		// Names were validated at construction, so Assign cannot fail.
		_ = confmap.Assign(cfg, fl.Name, value)
	}
	return cfg
}

// Fill writes a configuration object back into the matching fields.
// Object-typed values recurse with the accumulated dot prefix; leaves
// assign to the first field with the full path. Fields without a
// corresponding leaf keep their current value.
func (f *Form) Fill(cfg confmap.Object) {
	f.fill(cfg, "")
}

func (f *Form) fill(node confmap.Object, prefix string) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		value := node[key]
		if child, ok := value.(confmap.Object); ok {
			f.fill(child, full)
			continue
		}
		fl, ok := f.Lookup(full)
		if !ok {
			continue
		}
		if fl.Kind == Checkbox {
			fl.Checked = coerceBool(value)
			continue
		}
		fl.Value = FormatScalar(value)
	}
}

// FormatScalar renders a configuration leaf for display in a text
// field. Numbers render their parsed value, not the original input
// formatting; that round-trip is lossy by contract.
func FormatScalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func coerceBool(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if b, err := strconv.ParseBool(trimmed); err == nil {
			return b
		}
		return trimmed != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return true
	}
}
