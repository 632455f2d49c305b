package outwriter

import (
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/schema"
)

func textConfig() *contract.Config {
	return &contract.Config{Output: schema.TextOut, ResultLimit: 5, Width: 200}
}

func configFor(mode schema.OutputMode) *contract.Config {
	cfg := textConfig()
	cfg.Output = mode
	return cfg
}

func sampleReport() *schema.Report {
	median := 12.5
	return &schema.Report{
		Source: "./wrapped.json",
		Metrics: []schema.Metric{
			{
				Concept: schema.TotalMessagesConcept,
				Title:   "Total Messages",
				Display: "1,250",
				Raw:     1250.0,
				Source:  "total_number_messages",
			},
			{
				Concept: schema.TotalWordsConcept,
				Title:   "Total Words",
				Display: schema.Placeholder,
				Missing: true,
			},
		},
		Rankings: []schema.RankingResult{
			{
				Concept: schema.TopEmojisConcept,
				Title:   "Top Emojis",
				Entries: []schema.RankedEntry{{Category: "😂", Score: 3}, {Category: "❤️", Score: 1.5}},
				Display: []string{"3", "1.5"},
			},
			{
				Concept: schema.TopChatsByAttachmentsConcept,
				Title:   "Top Chats By Attachments",
				Entries: []schema.RankedEntry{},
				Missing: true,
			},
		},
		Chats:      sampleChats(),
		Extremes:   schema.ResponseExtremes{Top: []schema.RankedEntry{{Category: "Jane Doe", Score: median}}},
		Incomplete: []string{"hours_words"},
	}
}

func sampleChats() []schema.ChatDetail {
	median := 12.5
	return []schema.ChatDetail{
		{
			Name:             "Family",
			ParticipantNames: []string{"Samuel Huang", "Jane Doe", "Bob", "Alice Smith"},
			IsGroupChat:      true,
			ParticipantCount: 4,
			TotalMessages:    1200,
			MessagesSentYou:  300,
			MessagesPerDay:   3.29,
			TotalAttachments: 45,
		},
		{
			Name:                  "Jane Doe",
			ParticipantNames:      []string{"Jane Doe"},
			ParticipantCount:      1,
			TotalMessages:         500,
			MessagesSentYou:       260,
			MessagesPerDay:        1.37,
			TotalAttachments:      2,
			MedianResponseMinutes: &median,
		},
	}
}
