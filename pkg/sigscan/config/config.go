// Package config loads the source and keyword documents and the
// env-derived options. Everything is read once at process start and passed
// into components by the caller; core logic never reaches into the
// environment.
package config

import (
	"os"
	"strings"
)

// Feed describes one syndicated feed source.
type Feed struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// DebtSources is the source document for the debt scanner.
type DebtSources struct {
	RSSFeeds []Feed `json:"rss_feeds" yaml:"rss_feeds"`
}

// RegionalSources is the source document for the regional monitor.
type RegionalSources struct {
	Subreddits    []string `json:"subreddits" yaml:"subreddits"`
	RegionalFocus []string `json:"regional_focus" yaml:"regional_focus"`
}

// Options carries env-derived settings, read once at startup and never
// re-read mid-run.
type Options struct {
	CredentialsFile        string
	SpreadsheetID          string
	SheetName              string
	StorePath              string
	DebtScannerEnabled     bool
	RegionalMonitorEnabled bool
	LogLevel               string
	RedditUserAgent        string
}

// OptionsFromEnv reads configuration from the environment. When no
// spreadsheet is configured, StorePath selects the local store backend.
func OptionsFromEnv() Options {
	return Options{
		CredentialsFile:        os.Getenv("CREDENTIALS_FILE"),
		SpreadsheetID:          os.Getenv("SPREADSHEET_ID"),
		SheetName:              envDefault("SHEET_NAME", "Automation Queue"),
		StorePath:              envDefault("STORE_PATH", "sigscan.db"),
		DebtScannerEnabled:     envBool("DEBT_SCANNER_ENABLED", true),
		RegionalMonitorEnabled: envBool("REGIONAL_MONITOR_ENABLED", true),
		LogLevel:               envDefault("LOG_LEVEL", "INFO"),
		RedditUserAgent:        envDefault("REDDIT_USER_AGENT", "sigscan/1.0"),
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return strings.EqualFold(v, "true")
}
