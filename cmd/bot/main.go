package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"

	"github.com/suspectuso/send-approval-bot/internal/config"
	"github.com/suspectuso/send-approval-bot/internal/notifier"
	"github.com/suspectuso/send-approval-bot/internal/sheetdb"
	"github.com/suspectuso/send-approval-bot/internal/storage"
	"github.com/suspectuso/send-approval-bot/internal/submission"
	"github.com/suspectuso/send-approval-bot/internal/telegram"
	"github.com/suspectuso/send-approval-bot/internal/webhook"
	"github.com/suspectuso/send-approval-bot/internal/workflow"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

	// Load config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	// Setup logger
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(log)

	// Initialize record store
	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Error("init record store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Conversation state
	states := workflow.NewMemoryStore()
	engine := workflow.NewEngine(workflow.Config{
		AdminChatID: cfg.AdminID,
		Moderators:  cfg.Moderators,
	}, store, states, log.With("component", "workflow"))

	// Initialize telegram bot. In polling mode the bot feeds the pipeline
	// directly; the notifier is created right after the bot it delivers through.
	var notify *notifier.Notifier
	var pollHandler telegram.UpdateHandler
	if cfg.RunMode == config.RunModePolling {
		pollHandler = func(ctx context.Context, update *models.Update) {
			notify.HandleUpdate(ctx, update)
		}
	}

	bot, err := telegram.New(cfg.BotToken, pollHandler, log.With("component", "telegram"))
	if err != nil {
		log.Error("init telegram bot", "error", err)
		os.Exit(1)
	}
	log.Info("telegram bot initialized", "run_mode", cfg.RunMode)

	notify = notifier.New(engine, bot, log.With("component", "notifier"))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Expire abandoned conversations
	sweeper := workflow.NewSweeper(states, cfg.StateTTL, log.With("component", "sweeper"))
	go sweeper.Start(ctx, time.Minute)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info("shutting down...")
		cancel()
	}()

	// Webhook registration follows the run mode
	endpoint := cfg.WebhookURL
	if cfg.RunMode == config.RunModePolling {
		endpoint = ""
	}
	webhookManager := webhook.NewManager(bot.GetBot(), endpoint, cfg.WebhookSecret, log.With("component", "webhook"))
	if cfg.RunMode == config.RunModePolling || cfg.WebhookURL != "" {
		if err := webhookManager.Init(ctx); err != nil {
			log.Error("init webhook", "error", err)
		}
	}

	if cfg.RunMode == config.RunModePolling {
		log.Info("starting bot polling...")
		bot.Start(ctx)
		return
	}

	webhookServer := webhook.NewServer(notify.HandleUpdate, cfg.WebhookSecret, log.With("component", "http"))
	if err := webhookServer.Start(ctx, cfg.HTTPPort); err != nil {
		log.Error("webhook server", "error", err)
		os.Exit(1)
	}
}

// openStore picks the SheetDB client when SHEETDB_API is set and the SQL
// backend otherwise.
func openStore(cfg *config.Config, log *slog.Logger) (submission.Store, func(), error) {
	if cfg.SheetDBAPI != "" {
		log.Info("record store: sheetdb", "base_url", cfg.SheetDBAPI)
		return sheetdb.NewClient(cfg.SheetDBAPI, cfg.StoreToken, cfg.StoreTimeout), func() {}, nil
	}

	store, err := storage.New(cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		return nil, nil, err
	}
	log.Info("record store: sql", "driver", cfg.StoreDriver)
	return store, func() { store.Close() }, nil
}
