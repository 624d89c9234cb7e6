package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Delivery configuration
	WebhookURL        string `long:"webhook-url" env:"SLACK_WEBHOOK_URL" description:"Slack incoming webhook URL (required)" required:"true"`
	NotifyTimeout     int    `long:"notify-timeout" env:"NOTIFY_TIMEOUT" default:"10" description:"Webhook delivery timeout in seconds"`
	MessageIntervalMs int    `long:"message-interval" env:"MESSAGE_INTERVAL_MS" default:"1100" description:"Minimum spacing between messages in milliseconds"`

	// Source configuration
	SourcesDir   string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing source definition files"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"20" description:"Source and article fetch timeout in seconds"`

	// Seen-set storage
	SeenFile string `long:"seen-file" env:"SEEN_FILE" default:"./sent_urls.json" description:"Path of the persisted seen-set file"`

	// Preview configuration
	PreviewWords int `long:"preview-words" env:"PREVIEW_WORDS" default:"100" description:"Maximum number of words in an article preview"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"space-news-bot/1.0 (+https://github.com/newsbot)" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		WebhookURL:        raw.WebhookURL,
		NotifyTimeout:     raw.NotifyTimeout,
		MessageIntervalMs: raw.MessageIntervalMs,
		SourcesDir:        raw.SourcesDir,
		FetchTimeout:      raw.FetchTimeout,
		SeenFile:          raw.SeenFile,
		PreviewWords:      raw.PreviewWords,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
