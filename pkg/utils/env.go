package utils

import "os"

// Getenv reads an environment variable, returning def when the variable is
// unset or empty. Keeps main's config block free of repeated lookups.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
