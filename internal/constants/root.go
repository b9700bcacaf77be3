package constants

const (
	AppName            = "accountable"
	DefaultKeyringUser = "openai-api-key"
	ConnKeyringUser    = "db-connection"
	DefaultConfigPath  = "~/.config/accountable/accountable.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// HourKeyFormat is the canonical representation of an hour slot in the
	// store. Hours are floored before formatting, so exact string equality
	// on this format is equivalent to hour-slot equality.
	HourKeyFormat = "2006-01-02T15:04:05Z07:00"

	// ReminderWindowMin is the number of minutes after the top of the hour
	// during which an unforced check may surface a reminder.
	ReminderWindowMin = 5

	// CheckInterval is how often the periodic reminder check fires, in seconds.
	CheckIntervalSec = 60

	// Notifier constants
	TrayAppIdentifier      = "accountable-tray"
	NotifierLockfileName   = "accountable-tray.lock"
	NotificationDurationMs = 5000
)

// Analysis defaults
const (
	DefaultAPIType     = "ollama"
	DefaultOllamaHost  = "http://localhost:11434"
	DefaultOpenAIHost  = "https://api.openai.com"
	DefaultOpenAIModel = "gpt-3.5-turbo"
)

// Date range labels recognized by the analysis range resolver.
const (
	RangeToday     = "Today"
	RangeYesterday = "Yesterday"
	RangeLast3Days = "Last 3 Days"
	RangeLastWeek  = "Last Week"
	RangeLastMonth = "Last Month"
)
