// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/luckysolanki/dailicle/internal/secrets"
	"github.com/luckysolanki/dailicle/pkg/types"
)

const (
	defaultModel       = "gpt-4o-mini"
	defaultTargetWords = 5000
	defaultUserAgent   = "dailicle/0.1"
	defaultHistoryDB   = "data/dailicle.db"
	defaultArchiveDB   = "data/archive.db"
	defaultServerAddr  = ":8080"
)

// pipelineConfig assembles the full pipeline configuration from viper
// (config file plus DAILICLE_* environment variables), applies defaults,
// and fills missing credentials from loaded secret files.
func pipelineConfig() types.PipelineConfig {
	v := viper.GetViper()

	cfg := types.PipelineConfig{
		Generator: types.GeneratorConfig{
			Model:       stringOr(v, "generator.model", defaultModel),
			APIKey:      v.GetString("generator.api_key"),
			BaseURL:     v.GetString("generator.base_url"),
			MaxRetries:  intOr(v, "generator.max_retries", 2),
			TargetWords: intOr(v, "generator.target_words", defaultTargetWords),
			Timeout:     durationOr(v, "generator.timeout", 5*time.Minute),
		},
		History: types.HistoryConfig{
			DBPath:            stringOr(v, "history.db_path", defaultHistoryDB),
			TitleLookback:     durationOr(v, "history.title_lookback", 30*24*time.Hour),
			CategoryLookback:  durationOr(v, "history.category_lookback", 7*24*time.Hour),
			MaxExcludedTitles: intOr(v, "history.max_excluded_titles", 10),
			MaxExcludedTags:   intOr(v, "history.max_excluded_tags", 15),
		},
		Publish: types.PublishConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   durationOr(v, "publish.timeout", 60*time.Second),
				UserAgent: defaultUserAgent,
			},
			BaseURL:    v.GetString("publish.base_url"),
			APIKey:     v.GetString("publish.api_key"),
			Collection: v.GetString("publish.collection"),
		},
		Delivery: types.DeliveryConfig{
			Host:     v.GetString("delivery.host"),
			Port:     intOr(v, "delivery.port", 587),
			Username: v.GetString("delivery.username"),
			Password: v.GetString("delivery.password"),
			From:     v.GetString("delivery.from"),
			FromName: stringOr(v, "delivery.from_name", "Daily Articles"),
			To:       v.GetString("delivery.to"),
			Timeout:  durationOr(v, "delivery.timeout", 30*time.Second),
		},
		Archive: types.ArchiveConfig{
			DBPath: stringOr(v, "archive.db_path", defaultArchiveDB),
		},
		Server: types.ServerConfig{
			Addr: stringOr(v, "server.addr", defaultServerAddr),
		},
	}

	secrets.Apply(&cfg, loadedSecrets)
	return cfg
}

func stringOr(v *viper.Viper, key, fallback string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return fallback
}

func intOr(v *viper.Viper, key string, fallback int) int {
	if n := v.GetInt(key); n != 0 {
		return n
	}
	return fallback
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	if d := v.GetDuration(key); d != 0 {
		return d
	}
	return fallback
}
