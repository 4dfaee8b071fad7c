// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Board    BoardConfig    `mapstructure:"board"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Headless HeadlessConfig `mapstructure:"headless"`
	Run      RunConfig      `mapstructure:"run"`
	Columns  ColumnsConfig  `mapstructure:"columns"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// BoardConfig identifies the upstream board and its credentials.
type BoardConfig struct {
	APIURL  string `mapstructure:"api_url"`
	Token   string `mapstructure:"token"`
	BoardID string `mapstructure:"board_id"`
}

// WebhookConfig protects the inbound webhook endpoint.
type WebhookConfig struct {
	Secret string `mapstructure:"secret"`
}

// HTTPConfig configures outbound page fetches.
type HTTPConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
}

// HeadlessConfig configures the headless rendering subsystem.
type HeadlessConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxParallel   int  `mapstructure:"max_parallel"`
	NavTimeoutSec int  `mapstructure:"nav_timeout_seconds"`
}

// RunConfig governs the enrichment batch loop.
type RunConfig struct {
	Tasks          []string `mapstructure:"tasks"`
	RecordScope    string   `mapstructure:"record_scope"`
	RecordDelayMs  int      `mapstructure:"record_delay_ms"`
	FetchDelayMs   int      `mapstructure:"fetch_delay_ms"`
	Location       string   `mapstructure:"location"`
	DebugEvidence  bool     `mapstructure:"debug_evidence"`
	OverwriteFiles bool     `mapstructure:"overwrite_files"`
}

// ColumnsConfig binds each logical column role to a board column title.
// Titles are resolved once at task startup and validated before any
// record processing begins.
type ColumnsConfig struct {
	Website         string `mapstructure:"website"`
	ItemName        string `mapstructure:"item_name"`
	HQAddress       string `mapstructure:"hq_address"`
	TargetVerticals string `mapstructure:"target_verticals"`
	Guarantees      string `mapstructure:"guarantees"`
	Financing       string `mapstructure:"financing"`
	Sponsorships    string `mapstructure:"sponsorships"`
	Followers       string `mapstructure:"followers"`
	YelpReviews     string `mapstructure:"yelp_reviews"`
	NewReviews      string `mapstructure:"new_reviews"`
	Traffic         string `mapstructure:"traffic"`
	Organic         string `mapstructure:"organic"`
	InsuranceVendor string `mapstructure:"insurance_vendor"`
	FacebookActive  string `mapstructure:"facebook_active"`
	LinkedInActive  string `mapstructure:"linkedin_active"`
	TikTokActive    string `mapstructure:"tiktok_active"`
	GoogleAds       string `mapstructure:"google_ads"`
	MetaAds         string `mapstructure:"meta_ads"`
	BBB             string `mapstructure:"bbb"`
	AdSamples       string `mapstructure:"ad_samples"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ENRICH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("board.api_url", "https://api.monday.com/v2")
	v.SetDefault("http.timeout_seconds", 15)
	v.SetDefault("http.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	v.SetDefault("headless.enabled", false)
	v.SetDefault("headless.max_parallel", 1)
	v.SetDefault("headless.nav_timeout_seconds", 25)
	v.SetDefault("run.record_delay_ms", 400)
	v.SetDefault("run.fetch_delay_ms", 200)
	v.SetDefault("run.location", "Chicago, IL")
	v.SetDefault("run.debug_evidence", false)
	v.SetDefault("run.overwrite_files", false)
	v.SetDefault("logging.development", true)

	v.SetDefault("columns.website", "Website")
	v.SetDefault("columns.item_name", "Name")
	v.SetDefault("columns.hq_address", "HQ Address")
	v.SetDefault("columns.target_verticals", "Target Verticals")
	v.SetDefault("columns.guarantees", "Service Guarantees")
	v.SetDefault("columns.financing", "Financing Options")
	v.SetDefault("columns.sponsorships", "Sponsorships")
	v.SetDefault("columns.followers", "Followers Count")
	v.SetDefault("columns.yelp_reviews", "Yelp Reviews")
	v.SetDefault("columns.new_reviews", "New Reviews (30 Days)")
	v.SetDefault("columns.traffic", "Website Traffic Estimate")
	v.SetDefault("columns.organic", "Organic Keywords")
	v.SetDefault("columns.insurance_vendor", "Insurance Vendor")
	v.SetDefault("columns.facebook_active", "Facebook Active")
	v.SetDefault("columns.linkedin_active", "LinkedIn Active")
	v.SetDefault("columns.tiktok_active", "TikTok Active")
	v.SetDefault("columns.google_ads", "Google Ads Active")
	v.SetDefault("columns.meta_ads", "Meta Ads Active")
	v.SetDefault("columns.bbb", "BBB Accreditation")
	v.SetDefault("columns.ad_samples", "Ad Samples")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Board.Token == "" {
		return fmt.Errorf("board.token must be set (ENRICH_BOARD_TOKEN)")
	}
	if c.Board.BoardID == "" {
		return fmt.Errorf("board.board_id must be set (ENRICH_BOARD_BOARD_ID)")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.Headless.Enabled && c.Headless.MaxParallel <= 0 {
		return fmt.Errorf("headless.max_parallel must be > 0 when headless is enabled")
	}
	return nil
}

// FetchTimeout returns the outbound HTTP timeout as a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// RecordDelay is the politeness pause applied after each record.
func (c Config) RecordDelay() time.Duration {
	return time.Duration(c.Run.RecordDelayMs) * time.Millisecond
}

// FetchDelay is the politeness pause applied between page fetches for one record.
func (c Config) FetchDelay() time.Duration {
	return time.Duration(c.Run.FetchDelayMs) * time.Millisecond
}
