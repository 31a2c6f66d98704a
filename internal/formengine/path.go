package formengine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mohae/deepcopy"
	"github.com/promotora-credito/app-cadastro/internal/models"
)

// maxIndex bounds how far a single write may grow a collection
const maxIndex = 64

// Segment is one step of a Path: a map key or a collection index
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a map key segment
func Key(k string) Segment { return Segment{Key: k} }

// Index returns a collection index segment
func Index(i int) Segment { return Segment{Index: i, IsIndex: true} }

func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path addresses a value inside a FormState
type Path []Segment

// PathOf builds a path from string keys and int indexes, e.g.
// PathOf("enderecos", 0, "cep"). Any other part type panics.
func PathOf(parts ...interface{}) Path {
	p := make(Path, 0, len(parts))
	for _, part := range parts {
		switch v := part.(type) {
		case string:
			p = append(p, Key(v))
		case int:
			p = append(p, Index(v))
		case Segment:
			p = append(p, v)
		default:
			panic(fmt.Sprintf("formengine: unsupported path part %T", part))
		}
	}
	return p
}

// ParsePath parses a dotted path. Purely numeric segments are indexes.
func ParsePath(raw string) (Path, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty path", models.ErrInvalidPath)
	}

	parts := strings.Split(raw, ".")
	p := make(Path, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", models.ErrInvalidPath, raw)
		}
		if isNumeric(part) {
			i, err := strconv.Atoi(part)
			if err != nil || i > maxIndex {
				return nil, fmt.Errorf("%w: index %s out of range in %q", models.ErrInvalidPath, part, raw)
			}
			p = append(p, Index(i))
			continue
		}
		p = append(p, Key(part))
	}
	return p, nil
}

// MustParsePath is ParsePath for paths known at compile time
func MustParsePath(raw string) Path {
	p, err := ParsePath(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// String renders the path in dotted form
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// Parent returns the path without its last segment
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[: len(p)-1 : len(p)-1]
}

// Last returns the final segment
func (p Path) Last() Segment {
	if len(p) == 0 {
		return Segment{}
	}
	return p[len(p)-1]
}

// Child returns a new path with the given parts appended
func (p Path) Child(parts ...interface{}) Path {
	out := make(Path, 0, len(p)+len(parts))
	out = append(out, p...)
	return append(out, PathOf(parts...)...)
}

// Sibling returns the path of a sibling field sharing the same parent
func (p Path) Sibling(name string) Path {
	return p.Parent().Child(name)
}

// Clone deep copies a form state
func Clone(state models.FormState) models.FormState {
	if state == nil {
		return models.FormState{}
	}
	return deepcopy.Copy(state).(models.FormState)
}

// Get reads the value at path. Maps keyed by "0", "1"... are walked like collections.
func Get(state models.FormState, path Path) (interface{}, bool) {
	var node interface{} = map[string]interface{}(state)
	for _, seg := range path {
		switch n := node.(type) {
		case map[string]interface{}:
			v, ok := n[seg.String()]
			if !ok {
				return nil, false
			}
			node = v
		case models.FormState:
			v, ok := n[seg.String()]
			if !ok {
				return nil, false
			}
			node = v
		case []interface{}:
			if !seg.IsIndex || seg.Index >= len(n) {
				return nil, false
			}
			node = n[seg.Index]
		default:
			return nil, false
		}
	}
	return node, true
}

// GetString reads the value at path rendered as text
func GetString(state models.FormState, path Path) string {
	v, ok := Get(state, path)
	if !ok {
		return ""
	}
	s, _ := textValue(v)
	return s
}

// Mutate returns a copy of state with value written at path. Missing
// intermediates are created: a collection when the next segment is an
// index, a map otherwise. The input state is never modified.
func Mutate(state models.FormState, path Path, value interface{}) (models.FormState, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", models.ErrInvalidPath)
	}
	if path[0].IsIndex {
		return nil, fmt.Errorf("%w: %s starts with an index", models.ErrInvalidPath, path)
	}

	next := Clone(state)
	if _, err := setIn(map[string]interface{}(next), path, value); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return next, nil
}

func setIn(node interface{}, path Path, value interface{}) (interface{}, error) {
	seg := path[0]

	if node == nil {
		if seg.IsIndex {
			node = []interface{}{}
		} else {
			node = map[string]interface{}{}
		}
	}

	switch n := node.(type) {
	case models.FormState:
		return setInMap(map[string]interface{}(n), path, value)
	case map[string]interface{}:
		return setInMap(n, path, value)
	case []interface{}:
		if !seg.IsIndex {
			return nil, fmt.Errorf("%w: key %q on a collection", models.ErrPathConflict, seg.Key)
		}
		if seg.Index > maxIndex {
			return nil, fmt.Errorf("%w: index %d out of range", models.ErrInvalidPath, seg.Index)
		}
		for len(n) <= seg.Index {
			n = append(n, nil)
		}
		if len(path) == 1 {
			n[seg.Index] = value
			return n, nil
		}
		child, err := setIn(n[seg.Index], path[1:], value)
		if err != nil {
			return nil, err
		}
		n[seg.Index] = child
		return n, nil
	default:
		return nil, fmt.Errorf("%w: cannot descend into %T at %q", models.ErrPathConflict, node, seg.String())
	}
}

func setInMap(m map[string]interface{}, path Path, value interface{}) (interface{}, error) {
	key := path[0].String()
	if len(path) == 1 {
		m[key] = value
		return m, nil
	}
	child, err := setIn(m[key], path[1:], value)
	if err != nil {
		return nil, err
	}
	m[key] = child
	return m, nil
}
