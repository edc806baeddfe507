// utils/fieldpath.go - Structural field paths over nested form data
package utils

import (
	"fmt"
	"strings"
)

// PathSegment is one step in a field path: either an object key or an
// array index.
type PathSegment struct {
	Key     string
	Index   int
	IsIndex bool
}

// FieldPath addresses a leaf inside a nested form-data structure. Paths
// are built and compared structurally rather than by string parsing.
type FieldPath []PathSegment

// Child returns the path extended by an object key.
func (p FieldPath) Child(key string) FieldPath {
	next := make(FieldPath, len(p), len(p)+1)
	copy(next, p)
	return append(next, PathSegment{Key: key})
}

// Elem returns the path extended by an array index.
func (p FieldPath) Elem(index int) FieldPath {
	next := make(FieldPath, len(p), len(p)+1)
	copy(next, p)
	return append(next, PathSegment{Index: index, IsIndex: true})
}

// Equal reports whether two paths address the same field.
func (p FieldPath) Equal(other FieldPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the path in dot/bracket notation, e.g.
// "subExams[0].sub_exam_name".
func (p FieldPath) String() string {
	var b strings.Builder
	for i, seg := range p {
		if seg.IsIndex {
			fmt.Fprintf(&b, "[%d]", seg.Index)
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Key)
	}
	return b.String()
}

// WalkLeaves visits every leaf value in a nested structure of maps,
// slices and scalars, passing the structural path to each.
func WalkLeaves(value interface{}, visit func(path FieldPath, value interface{})) {
	walkLeaves(value, nil, visit)
}

func walkLeaves(value interface{}, path FieldPath, visit func(FieldPath, interface{})) {
	switch v := value.(type) {
	case map[string]interface{}:
		if len(v) == 0 {
			return
		}
		for key, child := range v {
			walkLeaves(child, path.Child(key), visit)
		}
	case []interface{}:
		for i, child := range v {
			walkLeaves(child, path.Elem(i), visit)
		}
	default:
		visit(path, value)
	}
}
