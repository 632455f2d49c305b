package field

import (
	"encoding/json"
	"testing"

	"github.com/huangsam/wrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustArtifact(t *testing.T, doc string) *Artifact {
	t.Helper()
	var root map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &root))
	return NewArtifact(root)
}

func TestCompile(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"total_number_messages", false},
		{"top_emojis_data[0]", false},
		{"a.b[1][0]", false},
		{"a.[1]", false},
		{"", true},
		{"a..b", true},
		{"a[", true},
		{"a]", true},
		{"a[x]", true},
		{"a[-1]", true},
		{"a[0]b", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p, err := Compile(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, p.String())
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("a..b") })
	assert.NotPanics(t, func() { MustCompile("a.b") })
}

func TestResolvePresentButFalsy(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want any
	}{
		{"zero", `{"total_number_messages": 0, "totalMessages": 99}`, 0.0},
		{"false", `{"total_number_messages": false, "totalMessages": 99}`, false},
		{"empty list", `{"total_number_messages": [], "totalMessages": 99}`, []any{}},
		{"empty string", `{"total_number_messages": "", "totalMessages": 99}`, ""},
		{"empty object", `{"total_number_messages": {}, "totalMessages": 99}`, map[string]any{}},
	}

	candidates := []Path{MustCompile("total_number_messages"), MustCompile("totalMessages")}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolve(mustArtifact(t, tt.doc), candidates)
			require.False(t, r.Value.IsMissing())
			assert.Equal(t, tt.want, r.Value.Raw())
			assert.Equal(t, "total_number_messages", r.Source)
		})
	}
}

func TestResolveFallback(t *testing.T) {
	a := mustArtifact(t, `{"total_number_messages": null, "totalMessages": 42}`)
	r := DefaultTable.Resolve(a, schema.TotalMessagesConcept)
	f, ok := r.Value.Float()
	require.True(t, ok)
	assert.Equal(t, 42.0, f)
	assert.Equal(t, "totalMessages", r.Source)
	assert.Equal(t, schema.TotalMessagesConcept, r.Concept)
}

func TestResolveMissing(t *testing.T) {
	a := mustArtifact(t, `{"unrelated": 1}`)
	r := DefaultTable.Resolve(a, schema.TotalWordsConcept)
	assert.True(t, r.Value.IsMissing())
	assert.Empty(t, r.Source)

	unknown := DefaultTable.Resolve(a, schema.Concept("nope"))
	assert.True(t, unknown.Value.IsMissing())
}

func TestResolveShortCircuitsIntermediate(t *testing.T) {
	a := mustArtifact(t, `{"a": 5, "b": {"c": [1, 2]}, "d": [[7]]}`)
	tests := []struct {
		path    string
		missing bool
		want    any
	}{
		{"a.b.c", true, nil},
		{"b.c[5]", true, nil},
		{"b.c[1]", false, 2.0},
		{"b.x.y", true, nil},
		{"d[0][0]", false, 7.0},
		{"d[0].k", true, nil},
		{"a[0]", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v := a.Lookup(MustCompile(tt.path))
			assert.Equal(t, tt.missing, v.IsMissing())
			assert.Equal(t, tt.want, v.Raw())
		})
	}
}

func TestResolvePair(t *testing.T) {
	t.Run("first complete candidate wins", func(t *testing.T) {
		a := mustArtifact(t, `{
			"emoji_timeline": {"dates": ["2025-01-01"]},
			"emojiTimeline": {"labels": ["2025-02-01"], "emojis": {"😂": [3]}}
		}`)
		r := DefaultTable.ResolvePair(a, schema.EmojiTimelineConcept)
		require.False(t, r.IsMissing())
		assert.Equal(t, "emojiTimeline.{labels,emojis}", r.Source)
		assert.Equal(t, []string{"2025-02-01"}, r.Labels.Strings())
	})

	t.Run("list slots", func(t *testing.T) {
		a := mustArtifact(t, `{"top_emojis_data": [["😂", "❤️"], [10, 4]]}`)
		r := DefaultTable.ResolvePair(a, schema.TopEmojisConcept)
		require.False(t, r.IsMissing())
		assert.Equal(t, []string{"😂", "❤️"}, r.Labels.Strings())
		assert.Equal(t, []float64{10, 4}, r.Values.Floats())
		assert.Equal(t, "top_emojis_data.{[0],[1]}", r.Source)
	})

	t.Run("empty members are present", func(t *testing.T) {
		a := mustArtifact(t, `{"messages_sent_timeline": {"dates": [], "counts": []}, "messagesTimeline": {"labels": ["x"], "values": [1]}}`)
		r := DefaultTable.ResolvePair(a, schema.MessagesTimelineConcept)
		require.False(t, r.IsMissing())
		assert.Equal(t, "messages_sent_timeline.{dates,counts}", r.Source)
	})

	t.Run("missing", func(t *testing.T) {
		r := DefaultTable.ResolvePair(mustArtifact(t, `{}`), schema.ResponseTimeByHourConcept)
		assert.True(t, r.IsMissing())
		assert.Empty(t, r.Source)
	})
}

func TestCompilePairErrors(t *testing.T) {
	for _, raw := range []string{"a.b", "a.{b}", "a.{b,c,d}", "a.{b,}"} {
		_, err := CompilePair(raw)
		assert.ErrorIs(t, err, ErrInvalidPath, raw)
	}
}

func TestTableFallbackOrder(t *testing.T) {
	a := NewArtifact(map[string]any{"totalMessages": 5.0})
	r := DefaultTable.Resolve(a, schema.TotalMessagesConcept)
	assert.Equal(t, "totalMessages", r.Source)
	assert.Equal(t, schema.TotalMessagesConcept, r.Concept)

	a = NewArtifact(map[string]any{"total_number_messages": 0.0, "totalMessages": 5.0})
	assert.Equal(t, "total_number_messages", DefaultTable.Resolve(a, schema.TotalMessagesConcept).Source)

	_, err := NewTable(
		map[schema.Concept][]string{"x": {"a"}},
		map[schema.Concept][]string{"x": {"a.{b,c}"}},
	)
	assert.Error(t, err)
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float", 1.5, 1.5, true},
		{"int", 7, 7, true},
		{"uint8", uint8(3), 3, true},
		{"json number", json.Number("12"), 12, true},
		{"numeric string", " 2.5 ", 2.5, true},
		{"text", "abc", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"list", []any{1.0}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueAccessors(t *testing.T) {
	v := Present([]any{"a", 1.0, true, nil, []any{}})
	assert.Equal(t, []string{"a", "1", "true", "", ""}, v.Strings())
	assert.Equal(t, []float64{0, 1, 0, 0, 0}, v.Floats())

	_, ok := Missing.Float()
	assert.False(t, ok)
	assert.True(t, Present(nil).IsMissing())
	assert.Nil(t, Missing.Strings())

	s, ok := Present("hi").Str()
	assert.True(t, ok)
	assert.Equal(t, "hi", s)
	_, ok = Present(1.0).Str()
	assert.False(t, ok)

	b, ok := Present(false).Bool()
	assert.True(t, ok)
	assert.False(t, b)
	obj, ok := Present(map[string]any{"k": 1.0}).Object()
	assert.True(t, ok)
	assert.Len(t, obj, 1)
}

// FuzzCompile checks that compiling never panics and that lookups on an
// arbitrary path never panic either.
func FuzzCompile(f *testing.F) {
	for _, seed := range []string{"a", "a.b", "a[0]", "a[0][1].b", "..", "[", "a.[2]", "x[99999999999999999999]"} {
		f.Add(seed)
	}
	a := NewArtifact(map[string]any{"a": []any{map[string]any{"b": 1.0}}})
	f.Fuzz(func(t *testing.T, raw string) {
		p, err := Compile(raw)
		if err != nil {
			return
		}
		_ = a.Lookup(p)
	})
}
