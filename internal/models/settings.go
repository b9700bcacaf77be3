package models

// Settings holds user-tunable application settings, persisted in the
// settings table as key/value pairs.
type Settings struct {
	// APIType selects the analysis backend: "ollama" or "openai".
	APIType string
	// Model is the model name to use. Empty means pick automatically
	// (largest local model that fits the memory budget for ollama).
	Model string
	// OllamaHost is the base URL of the local ollama server.
	OllamaHost string
	// ReminderWindowMin is how many minutes past the top of the hour an
	// unforced check may still surface a reminder.
	ReminderWindowMin int
}
