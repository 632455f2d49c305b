package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/wrapped/core/numfmt"
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/schema"
)

// chatsPayload is the structured form of the chats command output.
type chatsPayload struct {
	Chats    []schema.ChatDetail     `json:"chats" yaml:"chats"`
	Missing  bool                    `json:"chats_missing" yaml:"chats_missing"`
	Extremes schema.ResponseExtremes `json:"response_extremes" yaml:"response_extremes"`
}

// WriteChats writes the conversation comparison and response-time extremes.
// missing marks an artifact without any conversation comparison, as opposed
// to an empty one.
func WriteChats(w io.Writer, chats []schema.ChatDetail, missing bool, extremes schema.ResponseExtremes, cfg *contract.Config) error {
	if chats == nil {
		chats = []schema.ChatDetail{}
	}
	payload := chatsPayload{Chats: chats, Missing: missing, Extremes: extremes}
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, payload)
	case schema.YAMLOut:
		return writeYAML(w, payload)
	case schema.CSVOut:
		return writeChatsCSV(w, chats)
	default:
		if len(chats) == 0 {
			if _, err := fmt.Fprintf(w, "Conversations: %s\n", schema.Placeholder); err != nil {
				return err
			}
		} else if err := writeChatsTable(w, chats, cfg); err != nil {
			return err
		}
		return writeExtremesTables(w, extremes, cfg)
	}
}

// speedLabel describes a median response time, colored when colors are enabled.
func speedLabel(minutes *float64, cfg *contract.Config) string {
	if minutes == nil {
		return schema.Placeholder
	}
	if cfg.UseColors {
		return contract.GetColorLabel(*minutes)
	}
	return contract.GetPlainLabel(*minutes)
}

// medianDisplay formats an optional median response time.
func medianDisplay(minutes *float64) string {
	if minutes == nil {
		return schema.Placeholder
	}
	return numfmt.DurationFromMinutes(*minutes)
}

// writeChatsCSV writes one record per conversation with raw numbers.
func writeChatsCSV(w io.Writer, chats []schema.ChatDetail) error {
	header := []string{
		"name",
		"type",
		"participants",
		"participant_count",
		"total_messages",
		"messages_sent_you",
		"messages_per_day",
		"total_attachments",
		"median_response_minutes",
		"speed",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range chats {
			median, speed := "", ""
			if c.MedianResponseMinutes != nil {
				median = formatRaw(*c.MedianResponseMinutes)
				speed = contract.GetPlainLabel(*c.MedianResponseMinutes)
			}
			row := []string{
				c.Name,
				schema.ChatKind(c.IsGroupChat),
				schema.FormatParticipants(c.ParticipantNames),
				strconv.Itoa(c.ParticipantCount),
				formatRaw(c.TotalMessages),
				formatRaw(c.MessagesSentYou),
				formatRaw(c.MessagesPerDay),
				formatRaw(c.TotalAttachments),
				median,
				speed,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeChatsTable prints the conversation comparison table.
func writeChatsTable(w io.Writer, chats []schema.ChatDetail, cfg *contract.Config) error {
	nameWidth := GetMaxTableNameWidth(cfg, 95)
	data := make([][]string, 0, len(chats))
	for _, c := range chats {
		data = append(data, []string{
			contract.TruncateName(c.Name, nameWidth),
			schema.ChatKind(c.IsGroupChat),
			contract.TruncateName(schema.FormatParticipants(c.ParticipantNames), nameWidth),
			numfmt.GroupedInteger(c.TotalMessages),
			numfmt.GroupedInteger(c.MessagesSentYou),
			numfmt.RoundedMagnitude(c.MessagesPerDay),
			numfmt.GroupedInteger(c.TotalAttachments),
			medianDisplay(c.MedianResponseMinutes),
			speedLabel(c.MedianResponseMinutes, cfg),
		})
	}
	headers := []string{"Name", "Type", "Participants", "Messages", "Yours", "Per Day", "Attachments", "Median Reply", "Speed"}
	return renderTable(w, headers, data)
}

// writeExtremesTables prints the slowest and fastest one-on-one chats.
func writeExtremesTables(w io.Writer, extremes schema.ResponseExtremes, cfg *contract.Config) error {
	if extremes.Missing {
		_, err := fmt.Fprintf(w, "Response Time Extremes: %s\n", schema.Placeholder)
		return err
	}
	sections := []struct {
		title   string
		entries []schema.RankedEntry
	}{
		{"Slowest Replies", extremes.Top},
		{"Fastest Replies", extremes.Bottom},
	}
	nameWidth := GetMaxTableNameWidth(cfg, 30)
	for _, s := range sections {
		if len(s.entries) == 0 {
			if _, err := fmt.Fprintf(w, "%s: %s\n", s.title, schema.Placeholder); err != nil {
				return err
			}
			continue
		}
		if err := writeHeading(w, cfg, s.title); err != nil {
			return err
		}
		data := make([][]string, 0, len(s.entries))
		for i, e := range s.entries {
			data = append(data, []string{
				strconv.Itoa(i + 1),
				contract.TruncateName(e.Category, nameWidth),
				numfmt.DurationFromMinutes(e.Score),
			})
		}
		if err := renderTable(w, []string{"Rank", "Name", "Median Reply"}, data); err != nil {
			return err
		}
	}
	return nil
}
