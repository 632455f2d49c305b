package field

import (
	"fmt"

	"github.com/huangsam/wrapped/schema"
)

// entry holds the ordered fallbacks for one concept.
type entry struct {
	single []Path
	pair   []PairCandidate
}

// Table maps every concept to its ordered candidate key-paths.
type Table struct {
	entries map[schema.Concept]entry
}

// NewTable compiles scalar and pair candidate strings into a Table.
func NewTable(single map[schema.Concept][]string, pairs map[schema.Concept][]string) (*Table, error) {
	t := &Table{entries: make(map[schema.Concept]entry, len(single)+len(pairs))}
	for c, raws := range single {
		var e entry
		for _, raw := range raws {
			p, err := Compile(raw)
			if err != nil {
				return nil, fmt.Errorf("concept %s: %w", c, err)
			}
			e.single = append(e.single, p)
		}
		t.entries[c] = e
	}
	for c, raws := range pairs {
		if _, dup := t.entries[c]; dup {
			return nil, fmt.Errorf("concept %s is both scalar and pair", c)
		}
		var e entry
		for _, raw := range raws {
			pc, err := CompilePair(raw)
			if err != nil {
				return nil, fmt.Errorf("concept %s: %w", c, err)
			}
			e.pair = append(e.pair, pc)
		}
		t.entries[c] = e
	}
	return t, nil
}

// DefaultTable is the canonical fallback order for every known concept.
var DefaultTable = mustTable(
	map[schema.Concept][]string{
		schema.TotalMessagesConcept:          {"total_number_messages", "totalMessages"},
		schema.TotalWordsConcept:             {"total_words_sent", "totalWords"},
		schema.IndividualsMessagedConcept:    {"non_gc_with_min2_msgs", "individualsMessaged"},
		schema.TopChatsByMessagesConcept:     {"top_n_chats_by_messages"},
		schema.TopChatsByAttachmentsConcept:  {"top_n_chats_by_attachments"},
		schema.ConversationComparisonConcept: {"conversation_comparison"},
		schema.ResponseExtremesConcept:       {"top_bottom_n_non_gc_by_response_time"},
	},
	map[schema.Concept][]string{
		schema.TopEmojisConcept:             {"top_emojis_data.{[0],[1]}", "topEmojisData.{[0],[1]}"},
		schema.EmojiTimelineConcept:         {"emoji_timeline.{dates,emojis}", "emojiTimeline.{labels,emojis}"},
		schema.TopChatsTimelineConcept:      {"top_chats_timeline.{dates,conversations}"},
		schema.ResponseTimeByHourConcept:    {"response_time_by_hour.{hours,avg_minutes}", "responseTimeByHour.{labels,values}"},
		schema.MessagesByHourConcept:        {"messages_sent_by_hour.{hours,counts}"},
		schema.WordsPerMessageByHourConcept: {"words_per_message_per_hour.{hours,avg_words}"},
		schema.MessagesTimelineConcept:      {"messages_sent_timeline.{dates,counts}", "messagesTimeline.{labels,values}"},
	},
)

func mustTable(single, pairs map[schema.Concept][]string) *Table {
	t, err := NewTable(single, pairs)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve resolves a scalar concept. Unknown concepts and pair concepts
// resolve to Missing.
func (t *Table) Resolve(a *Artifact, c schema.Concept) Resolved {
	r := Resolve(a, t.entries[c].single)
	r.Concept = c
	return r
}

// ResolvePair resolves a (labels, values) concept.
func (t *Table) ResolvePair(a *Artifact, c schema.Concept) ResolvedPair {
	r := ResolvePair(a, t.entries[c].pair)
	r.Concept = c
	return r
}
