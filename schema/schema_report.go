package schema

// Metric is a single displayable scalar of a report.
type Metric struct {
	Concept Concept `json:"concept" yaml:"concept"`
	Title   string  `json:"title" yaml:"title"`
	Display string  `json:"display" yaml:"display"`
	Raw     any     `json:"raw,omitempty" yaml:"raw,omitempty"`
	Source  string  `json:"source,omitempty" yaml:"source,omitempty"`
	Missing bool    `json:"missing" yaml:"missing"`
}

// TimelineResult is a bucketized timeline ready for charting.
type TimelineResult struct {
	Concept Concept       `json:"concept" yaml:"concept"`
	Title   string        `json:"title" yaml:"title"`
	Source  string        `json:"source,omitempty" yaml:"source,omitempty"`
	Points  []BucketPoint `json:"points" yaml:"points"`
	Dropped int           `json:"dropped" yaml:"dropped"`
	Missing bool          `json:"missing" yaml:"missing"`
}

// HourResult is an hour-of-day series; Display holds the formatted values.
type HourResult struct {
	Concept Concept       `json:"concept" yaml:"concept"`
	Title   string        `json:"title" yaml:"title"`
	Source  string        `json:"source,omitempty" yaml:"source,omitempty"`
	Points  []BucketPoint `json:"points" yaml:"points"`
	Display []string      `json:"display" yaml:"display"`
	Missing bool          `json:"missing" yaml:"missing"`
}

// TopSeriesResult holds top-N aligned series and their per-label rows.
type TopSeriesResult struct {
	Concept Concept          `json:"concept" yaml:"concept"`
	Title   string           `json:"title" yaml:"title"`
	Source  string           `json:"source,omitempty" yaml:"source,omitempty"`
	Series  []CategorySeries `json:"series" yaml:"series"`
	Rows    []SeriesRow      `json:"rows" yaml:"rows"`
	Missing bool             `json:"missing" yaml:"missing"`
}

// RankingResult is a ranked (category, score) list with display strings.
type RankingResult struct {
	Concept Concept       `json:"concept" yaml:"concept"`
	Title   string        `json:"title" yaml:"title"`
	Source  string        `json:"source,omitempty" yaml:"source,omitempty"`
	Entries []RankedEntry `json:"entries" yaml:"entries"`
	Display []string      `json:"display" yaml:"display"`
	Missing bool          `json:"missing" yaml:"missing"`
}

// ChatDetail is one row of the conversation comparison table.
type ChatDetail struct {
	Name                  string   `json:"name" yaml:"name"`
	ParticipantNames      []string `json:"participant_names,omitempty" yaml:"participant_names,omitempty"`
	IsGroupChat           bool     `json:"is_group_chat" yaml:"is_group_chat"`
	ParticipantCount      int      `json:"participant_count" yaml:"participant_count"`
	TotalMessages         float64  `json:"total_messages" yaml:"total_messages"`
	MessagesSentYou       float64  `json:"messages_sent_you" yaml:"messages_sent_you"`
	MessagesPerDay        float64  `json:"messages_per_day" yaml:"messages_per_day"`
	TotalAttachments      float64  `json:"total_attachments" yaml:"total_attachments"`
	MedianResponseMinutes *float64 `json:"median_response_time_minutes,omitempty" yaml:"median_response_time_minutes,omitempty"`
}

// ResponseExtremes holds the slowest and fastest one-on-one chats by response time.
type ResponseExtremes struct {
	Top     []RankedEntry `json:"top" yaml:"top"`
	Bottom  []RankedEntry `json:"bottom" yaml:"bottom"`
	Missing bool          `json:"missing" yaml:"missing"`
}

// Report is everything rendered from one artifact load.
type Report struct {
	Source       string            `json:"source" yaml:"source"`
	Metrics      []Metric          `json:"metrics" yaml:"metrics"`
	Timelines    []TimelineResult  `json:"timelines" yaml:"timelines"`
	Hours        []HourResult      `json:"hours" yaml:"hours"`
	TopSeries    []TopSeriesResult `json:"top_series" yaml:"top_series"`
	Rankings     []RankingResult   `json:"rankings" yaml:"rankings"`
	Chats        []ChatDetail      `json:"chats" yaml:"chats"`
	ChatsMissing bool              `json:"chats_missing" yaml:"chats_missing"`
	Extremes     ResponseExtremes  `json:"response_extremes" yaml:"response_extremes"`
	Incomplete   []string          `json:"incomplete,omitempty" yaml:"incomplete,omitempty"`
}
