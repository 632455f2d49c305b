package schema

// Custom string types for type safety.
type (
	// Concept names a logical artifact field that may live under several key-paths.
	Concept string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for session storage.
	DatabaseBackend string

	// TimelineMetric selects a date-based timeline to render.
	TimelineMetric string

	// HourMetric selects an hour-of-day series to render.
	HourMetric string

	// TopMetric selects a top-N category series to render.
	TopMetric string
)

// Concepts resolved from the artifact.
const (
	TotalMessagesConcept          Concept = "total_messages"
	TotalWordsConcept             Concept = "total_words"
	IndividualsMessagedConcept    Concept = "individuals_messaged"
	TopEmojisConcept              Concept = "top_emojis"
	EmojiTimelineConcept          Concept = "emoji_timeline"
	TopChatsByMessagesConcept     Concept = "top_chats_by_messages"
	TopChatsByAttachmentsConcept  Concept = "top_chats_by_attachments"
	TopChatsTimelineConcept       Concept = "top_chats_timeline"
	ConversationComparisonConcept Concept = "conversation_comparison"
	ResponseTimeByHourConcept     Concept = "response_time_by_hour"
	MessagesByHourConcept         Concept = "messages_by_hour"
	WordsPerMessageByHourConcept  Concept = "words_per_message_by_hour"
	MessagesTimelineConcept       Concept = "messages_timeline"
	ResponseExtremesConcept       Concept = "response_time_extremes"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// All session backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Timeline metrics.
const (
	MessagesTimeline TimelineMetric = "messages" // default
	EmojiTimeline    TimelineMetric = "emoji"
	ChatsTimeline    TimelineMetric = "chats"
)

// Hour metrics.
const (
	ResponseHours HourMetric = "response" // default
	MessagesHours HourMetric = "messages"
	WordsHours    HourMetric = "words"
)

// Top metrics.
const (
	EmojiTop TopMetric = "emoji" // default
	ChatsTop TopMetric = "chats"
)

// Placeholder is rendered wherever a value is missing or not displayable.
const Placeholder = "—"

// DefaultTopN is the number of categories kept by top-N series.
const DefaultTopN = 5

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	YAMLOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid session backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidTimelineMetrics lists all valid timeline metrics.
var ValidTimelineMetrics = map[TimelineMetric]struct{}{
	MessagesTimeline: {},
	EmojiTimeline:    {},
	ChatsTimeline:    {},
}

// ValidHourMetrics lists all valid hour metrics.
var ValidHourMetrics = map[HourMetric]struct{}{
	ResponseHours: {},
	MessagesHours: {},
	WordsHours:    {},
}

// ValidTopMetrics lists all valid top-N metrics.
var ValidTopMetrics = map[TopMetric]struct{}{
	EmojiTop: {},
	ChatsTop: {},
}
