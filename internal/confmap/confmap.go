// Package confmap maps dot-separated field paths onto the nested
// configuration objects exchanged with the scribe daemon.
package confmap

import (
	"fmt"
	"strings"
)

// Object is the nested key/value configuration tree exchanged with the
// backend. The alias keeps nodes decoded by encoding/json addressable
// without conversion.
type Object = map[string]any

// Assign walks path through target and sets the final segment to value.
// Intermediate segments that are missing or not object-typed are
// re-initialized as empty objects before descent. The final segment
// overwrites whatever was there, including subtrees.
func Assign(target Object, path string, value any) error {
	if target == nil {
		return fmt.Errorf("nil target object")
	}
	segments, err := splitPath(path)
	if err != nil {
		return err
	}
	node := target
	for _, seg := range segments[:len(segments)-1] {
		child, ok := node[seg].(Object)
		if !ok {
			child = Object{}
			node[seg] = child
		}
		node = child
	}
	node[segments[len(segments)-1]] = value
	return nil
}

// Read walks path through source without creating nodes. The second
// return value is false when any step is absent or not object-typed.
func Read(source Object, path string) (any, bool) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, false
	}
	node := source
	for i, seg := range segments {
		v, ok := node[seg]
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return v, true
		}
		child, ok := v.(Object)
		if !ok {
			return nil, false
		}
		node = child
	}
	return nil, false
}

// splitPath rejects empty paths and empty segments so malformed field
// names fail loudly instead of silently creating stray nested objects.
func splitPath(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty field path")
	}
	segments := strings.Split(path, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("field path %q has an empty segment", path)
		}
	}
	return segments, nil
}
