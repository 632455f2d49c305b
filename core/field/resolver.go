// Package field resolves canonical concepts out of a schema-drifting artifact.
package field

import (
	"fmt"
	"strings"

	"github.com/huangsam/wrapped/schema"
)

// Resolved is the outcome of resolving one concept.
// Source is the key-path that produced Value, or "" when Value is Missing.
type Resolved struct {
	Concept schema.Concept
	Value   Value
	Source  string
}

// ResolvedPair is the outcome of resolving a (labels, values) concept.
type ResolvedPair struct {
	Concept schema.Concept
	Labels  Value
	Values  Value
	Source  string
}

// IsMissing reports whether no candidate pair was fully present.
func (r ResolvedPair) IsMissing() bool {
	return r.Labels.IsMissing() || r.Values.IsMissing()
}

// Resolve tries candidates in order and returns the first non-null value,
// including falsy ones such as 0, false, "" or [].
func Resolve(a *Artifact, candidates []Path) Resolved {
	for _, p := range candidates {
		if v := a.Lookup(p); !v.IsMissing() {
			return Resolved{Value: v, Source: p.String()}
		}
	}
	return Resolved{Value: Missing}
}

// PairCandidate is a key-path prefix with two member paths, written as
// "prefix.{labels,values}". Members beginning with "[" are appended
// without a dot, so "top_emojis_data.{[0],[1]}" addresses two list slots.
type PairCandidate struct {
	raw    string
	labels Path
	values Path
}

// CompilePair parses a pair candidate.
func CompilePair(raw string) (PairCandidate, error) {
	open := strings.Index(raw, "{")
	if open < 0 || !strings.HasSuffix(raw, "}") {
		return PairCandidate{}, fmt.Errorf("%w: pair %q needs {labels,values}", ErrInvalidPath, raw)
	}
	prefix := strings.TrimSuffix(raw[:open], ".")
	members := strings.Split(raw[open+1:len(raw)-1], ",")
	if len(members) != 2 {
		return PairCandidate{}, fmt.Errorf("%w: pair %q needs exactly two members", ErrInvalidPath, raw)
	}
	paths := make([]Path, 2)
	for i, m := range members {
		m = strings.TrimSpace(m)
		joined := m
		switch {
		case prefix == "":
		case strings.HasPrefix(m, "["):
			joined = prefix + m
		default:
			joined = prefix + "." + m
		}
		p, err := Compile(joined)
		if err != nil {
			return PairCandidate{}, err
		}
		paths[i] = p
	}
	return PairCandidate{raw: raw, labels: paths[0], values: paths[1]}, nil
}

// String returns the candidate as written.
func (pc PairCandidate) String() string {
	return pc.raw
}

// ResolvePair returns the first candidate whose members are both present.
// A candidate with only one member present does not win.
func ResolvePair(a *Artifact, candidates []PairCandidate) ResolvedPair {
	for _, pc := range candidates {
		labels := a.Lookup(pc.labels)
		values := a.Lookup(pc.values)
		if labels.IsMissing() || values.IsMissing() {
			continue
		}
		return ResolvedPair{Labels: labels, Values: values, Source: pc.raw}
	}
	return ResolvedPair{Labels: Missing, Values: Missing}
}
