// Package config loads runtime configuration from the environment.
package config

import "os"

// API types selecting the live lookup backend.
const (
	APITypeCPDL      = "cpdl"
	APITypeMock      = "mock"
	APITypeWebSearch = "web_search"
	APITypeOpenAI    = "openai"
)

// Config is everything the binaries need from the environment. Call
// godotenv.Load before Load when a .env file should be honored.
type Config struct {
	HTTPAddr string

	APIType string
	APIKey  string

	CPDLBaseURL string

	SearchBaseURL      string
	SearchClientID     string
	SearchClientSecret string

	OpenAIModel string

	HistoryPath string
}

// Load reads the environment, applying defaults for anything unset.
func Load() Config {
	return Config{
		HTTPAddr:           getenv("CHORALE_HTTP_ADDR", ":8080"),
		APIType:            getenv("CHORALE_API_TYPE", APITypeCPDL),
		APIKey:             os.Getenv("CHORALE_API_KEY"),
		CPDLBaseURL:        os.Getenv("CPDL_BASE_URL"),
		SearchBaseURL:      os.Getenv("SEARCH_BASE_URL"),
		SearchClientID:     os.Getenv("SEARCH_CLIENT_ID"),
		SearchClientSecret: os.Getenv("SEARCH_CLIENT_SECRET"),
		OpenAIModel:        os.Getenv("OPENAI_MODEL"),
		HistoryPath:        getenv("CHORALE_HISTORY_DB", "chorale.db"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
