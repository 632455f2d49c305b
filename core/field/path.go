package field

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned when a key-path does not follow the seg(.seg)* grammar.
var ErrInvalidPath = errors.New("invalid key-path")

// step is a single traversal instruction: an object key or a list index.
type step struct {
	key     string
	index   int
	isIndex bool
}

// Path is a compiled key-path such as "top_emojis_data[0]" or "emoji_timeline.dates".
type Path struct {
	raw   string
	steps []step
}

// Compile parses a key-path. Each dot-separated segment is an object key
// optionally followed by one or more [n] list indexes. A segment may also be
// a bare index (e.g. "a.[1]") when the previous segment already ends in a list.
func Compile(raw string) (Path, error) {
	if strings.TrimSpace(raw) == "" {
		return Path{}, fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	var steps []step
	for seg := range strings.SplitSeq(raw, ".") {
		segSteps, err := compileSegment(seg)
		if err != nil {
			return Path{}, fmt.Errorf("%w: %q: %v", ErrInvalidPath, raw, err)
		}
		steps = append(steps, segSteps...)
	}
	return Path{raw: raw, steps: steps}, nil
}

// MustCompile is like Compile but panics on a malformed path.
// It is meant for package-level tables built from literals.
func MustCompile(raw string) Path {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func compileSegment(seg string) ([]step, error) {
	open := strings.IndexByte(seg, '[')
	key := seg
	rest := ""
	if open >= 0 {
		key, rest = seg[:open], seg[open:]
	}
	if strings.ContainsAny(key, "]") {
		return nil, errors.New("unbalanced bracket")
	}
	var steps []step
	if key != "" {
		steps = append(steps, step{key: key})
	} else if rest == "" {
		return nil, errors.New("empty segment")
	}
	for rest != "" {
		if rest[0] != '[' {
			return nil, fmt.Errorf("unexpected %q after index", rest)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, errors.New("unbalanced bracket")
		}
		n, err := strconv.Atoi(rest[1:end])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("bad index %q", rest[1:end])
		}
		steps = append(steps, step{index: n, isIndex: true})
		rest = rest[end+1:]
	}
	return steps, nil
}

// String returns the key-path as written.
func (p Path) String() string {
	return p.raw
}

// lookup walks the path from root. It reports false on any missing or
// mistyped intermediate step, and on a terminal JSON null.
func (p Path) lookup(root any) (any, bool) {
	if len(p.steps) == 0 {
		return nil, false
	}
	cur := root
	for _, s := range p.steps {
		if s.isIndex {
			list, ok := cur.([]any)
			if !ok || s.index >= len(list) {
				return nil, false
			}
			cur = list[s.index]
			continue
		}
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[s.key]
		if !ok {
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}
