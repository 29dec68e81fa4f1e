package driven

// ConfigStore provides persistent key-value configuration.
// Keys use dotted notation, e.g. "oracle.provider", "openai.api_key".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" if unset.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 if unset.
	GetInt(key string) int

	// Set stores a configuration value.
	Set(key string, value any) error

	// Save persists all values to the backing store.
	Save() error
}
