package cli

import "os"

// Config holds CLI settings
type Config struct {
	ServerURL string
	Output    string
}

// DefaultConfig returns the default CLI configuration, taking the server
// URL from GAMERSDB_SERVER when set.
func DefaultConfig() *Config {
	serverURL := os.Getenv("GAMERSDB_SERVER")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}
	return &Config{
		ServerURL: serverURL,
		Output:    "text",
	}
}
