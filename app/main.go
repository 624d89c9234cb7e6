package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"newsbot/app/article"
	"newsbot/app/cfg"
	"newsbot/app/config"
	"newsbot/app/notifier"
	"newsbot/app/pipeline"
	"newsbot/app/seen"
	"newsbot/app/source"
)

func main() {
	// .env is optional; deployments inject the webhook secret through the
	// environment
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)
	slog.Info("Starting news notification run", "version", appCfg.Version)

	loader := config.NewLoader(appCfg.SourcesDir)
	definitions, err := loader.LoadAll()
	if err != nil {
		slog.Error("Failed to load source definitions", "error", err)
		os.Exit(1)
	}
	if len(definitions) == 0 {
		slog.Warn("No source definitions found", "dir", appCfg.SourcesDir)
	}

	// One shared client; every call site carries its own timeout
	client := &http.Client{}
	renderer := source.NewHTTPRenderer(client, appCfg.UserAgent)

	sources := make([]source.Source, 0, len(definitions))
	for _, def := range definitions {
		if !def.Settings.Enabled {
			slog.Debug("Source disabled, skipping", "source", def.Name)
			continue
		}

		src, err := source.Build(def, client, renderer, appCfg.UserAgent)
		if err != nil {
			slog.Error("Failed to build source", "source", def.Name, "error", err)
			os.Exit(1)
		}
		sources = append(sources, src)
	}

	resolver := article.NewResolver(client, appCfg.UserAgent, appCfg.PreviewWords,
		time.Duration(appCfg.FetchTimeout)*time.Second)
	notif := notifier.New(appCfg.WebhookURL,
		time.Duration(appCfg.NotifyTimeout)*time.Second,
		time.Duration(appCfg.MessageIntervalMs)*time.Millisecond)
	store := seen.NewStore(appCfg.SeenFile)

	runner := pipeline.NewRunner(sources, resolver, notif, store)
	if err := runner.Run(context.Background()); err != nil {
		slog.Error("Run aborted", "error", err)
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
