package env

import "os"

// Get reads an environment variable, falling back when unset or empty.
// Only for knobs needed before config parsing runs (log format).
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
