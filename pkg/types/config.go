package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "dailicle/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// GeneratorConfig holds settings for the generation stage.
type GeneratorConfig struct {
	// Model is the model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the model API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint for OpenAI-compatible services.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retry attempts after a transient
	// generation failure (default 2). Non-transient failures are never
	// retried.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// TargetWords is the requested essay length (default 5000).
	TargetWords int `json:"target_words" yaml:"target_words"`

	// Timeout bounds a single generation call.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// HistoryConfig holds settings for the topic history store and the exclusion
// window applied when building generation requests.
type HistoryConfig struct {
	// DBPath is the SQLite database file (default "data/dailicle.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// TitleLookback is the window for excluding recent topic titles
	// (default 30 days).
	TitleLookback time.Duration `json:"title_lookback" yaml:"title_lookback"`

	// CategoryLookback is the window for excluding recently used
	// categories (default 7 days).
	CategoryLookback time.Duration `json:"category_lookback" yaml:"category_lookback"`

	// MaxExcludedTitles caps the recent-title list sent to the model
	// (default 10). All past titles are still sent for exact-repeat
	// avoidance.
	MaxExcludedTitles int `json:"max_excluded_titles" yaml:"max_excluded_titles"`

	// MaxExcludedTags caps the recently covered tag list (default 15).
	MaxExcludedTags int `json:"max_excluded_tags" yaml:"max_excluded_tags"`
}

// PublishConfig holds settings for the document-publishing client.
type PublishConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the publishing service endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey authenticates against the publishing service.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Collection is the parent collection or page new documents are
	// created under.
	Collection string `json:"collection,omitempty" yaml:"collection,omitempty"`
}

// DeliveryConfig holds SMTP settings for the mail delivery client.
type DeliveryConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	From     string `json:"from" yaml:"from"`
	FromName string `json:"from_name" yaml:"from_name"`
	To       string `json:"to" yaml:"to"`

	// Timeout bounds the whole SMTP conversation (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ArchiveConfig holds settings for the article archive store.
type ArchiveConfig struct {
	// DBPath is the SQLite database file (default "data/archive.db").
	// The archive is logically separate from topic history even when the
	// files share a directory.
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ServerConfig holds settings for the HTTP trigger surface.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	History   HistoryConfig   `json:"history" yaml:"history"`
	Publish   PublishConfig   `json:"publish" yaml:"publish"`
	Delivery  DeliveryConfig  `json:"delivery" yaml:"delivery"`
	Archive   ArchiveConfig   `json:"archive" yaml:"archive"`
	Server    ServerConfig    `json:"server" yaml:"server"`
}
