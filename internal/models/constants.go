package models

// Conversation steps. A user with no stored state is idle.
const (
	StepUploadCode    = "upload_wait_code"
	StepUploadFile    = "upload_wait_file"
	StepDeleteCode    = "delete_wait_code"
	StepChannelAdd    = "channel_wait_add"
	StepChannelRemove = "channel_wait_remove"
	StepStatsUser     = "stats_wait_user"
	StepStatsStart    = "stats_wait_start"
	StepStatsEnd      = "stats_wait_end"

	// StepBroadcastPrefix + BroadcastKind forms the waiting step of each
	// broadcast sub-flow, e.g. "broadcast_wait_photo".
	StepBroadcastPrefix = "broadcast_wait_"
)

// Callback payload patterns.
const (
	CallbackCheckSubscription = "check_subscription"
	CallbackBackToMenu        = "back_to_menu"
	CallbackFilterPrefix      = "filter_"
	CallbackPagePrefix        = "page_"
	CallbackExportStats       = "export_stats_"
)

const (
	// DefaultStateTTL is how long redis keeps an abandoned conversation state.
	DefaultStateTTL = 24 * 60 * 60 // seconds

	// DefaultPaginationSize is the file-list page size.
	DefaultPaginationSize = 10

	// RateLimitMessages / RateLimitWindow throttle non-admin users.
	RateLimitMessages = 20
	RateLimitWindow   = 60 // seconds

	// Broadcast engine defaults; chosen to stay under Telegram's limits.
	BroadcastConcurrency  = 20
	BroadcastBatchSize    = 1000
	BroadcastBatchPauseMS = 1000
	BroadcastSendDelayMS  = 50
)

// Date-filter vocabulary accepted by the per-user stats flow, in addition to
// an exact "2006-01-02 15:04:05" timestamp.
const (
	FilterToday     = "today"
	FilterYesterday = "yesterday"
	FilterWeek      = "week"
	FilterAll       = "all"

	FilterTimeLayout = "2006-01-02 15:04:05"
)
