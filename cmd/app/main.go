package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"santa-admin-bot/internal/config"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/infra/db/sqlite"
	"santa-admin-bot/internal/infra/metrics"
	"santa-admin-bot/internal/infra/sched"
	tele "santa-admin-bot/internal/infra/telegram"
	"santa-admin-bot/internal/infra/web"
	"santa-admin-bot/internal/logging"
	"santa-admin-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console log, no sampling)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	logger.Info().Msg(logging.Banner)

	metrics.MustRegister()

	// ---- SQLite ----
	store, err := sqlite.Open(ctx, cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("sqlite open failed")
	}
	defer store.Close()

	// ---- Repositories ----
	settingsRepo := sqlite.NewSettingsRepo(store)
	userRepo := sqlite.NewUserRepo(store)
	roleRepo := sqlite.NewRoleRepo(store)
	relayRepo := sqlite.NewRelayRepo(store)
	modRepo := sqlite.NewModerationRepo(store)
	noteRepo := sqlite.NewNoteRepo(store)
	reminderRepo := sqlite.NewReminderRepo(store)
	birthdayRepo := sqlite.NewBirthdayRepo(store)
	actionRepo := sqlite.NewActionLogRepo(store)
	backupRepo := sqlite.NewBackupRepo(store)

	// ---- Telegram API ----
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram auth failed, check BOT_TOKEN")
	}
	client := tele.NewClient(api)

	// ---- Use cases ----
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, actionRepo, logger)
	if err := settingsUC.Seed(ctx, model.Settings{
		AdminChatID:        cfg.Chats.AdminChatID,
		UserChatID:         cfg.Chats.UserChatID,
		LogChannelID:       cfg.Chats.LogChannelID,
		NotesChannelID:     cfg.Chats.NotesChannelID,
		TestChannelID:      cfg.Chats.TestChannelID,
		DeleteTimerSeconds: cfg.Relay.DeleteTimerSeconds,
	}); err != nil {
		logger.Fatal().Err(err).Msg("settings seed failed")
	}

	announcer := tele.NewLogChannelAnnouncer(client, settingsUC, *logger)

	accessUC := usecase.NewAccessUseCase(cfg.Bot.OwnerIDs, roleRepo, logger)
	userUC := usecase.NewUserUseCase(userRepo, logger)
	relayUC := usecase.NewRelayUseCase(relayRepo, modRepo, actionRepo, store, logger)
	modUC := usecase.NewModerationUseCase(modRepo, actionRepo, announcer, logger)
	notesUC := usecase.NewNotesUseCase(noteRepo, settingsUC, client, logger)
	reminderUC := usecase.NewReminderUseCase(reminderRepo, client, logger)
	birthdayUC := usecase.NewBirthdayUseCase(birthdayRepo, actionRepo, settingsUC, client, announcer, logger)
	statsUC := usecase.NewStatsUseCase(userRepo, relayRepo, modRepo, logger)
	backupUC := usecase.NewBackupUseCase(backupRepo, actionRepo, logger)

	// Volatile modes from a previous run do not survive a restart.
	if n, err := store.ClearOnlineModes(ctx); err != nil {
		logger.Warn().Err(err).Msg("online mode cleanup failed")
	} else if n > 0 {
		logger.Info().Int64("count", n).Msg("stale online modes cleared")
	}

	// ---- Telegram bot ----
	bot, err := tele.NewBot(api, client, cfg, tele.Deps{
		Settings:   settingsUC,
		Access:     accessUC,
		Users:      userUC,
		Relay:      relayUC,
		Moderation: modUC,
		Notes:      notesUC,
		Reminders:  reminderUC,
		Birthdays:  birthdayUC,
		Stats:      statsUC,
		Backups:    backupUC,
		Actions:    actionRepo,
		Announcer:  announcer,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("bot init failed")
	}
	go func() {
		if err := bot.StartPolling(ctx); err != nil && err != context.Canceled {
			logger.Error().Err(err).Msg("polling stopped")
		}
	}()

	// ---- Workers ----
	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Warn().Err(err).Str("tz", cfg.Scheduler.Timezone).Msg("timezone load failed, using UTC")
		loc = time.UTC
	}
	retention := time.Duration(cfg.Relay.MappingRetentionDays) * 24 * time.Hour

	go func() { _ = sched.NewBirthdayWorker(cfg.Scheduler.BirthdayInterval, loc, birthdayUC, logger).Run(ctx) }()
	go func() { _ = sched.NewReminderWorker(cfg.Scheduler.ReminderInterval, reminderUC, logger).Run(ctx) }()
	go func() { _ = sched.NewPruneWorker(6*time.Hour, retention, relayUC, logger).Run(ctx) }()

	// ---- Admin HTTP ----
	auth := web.NewAuthManager(cfg.Admin.SessionSecret, !cfg.Runtime.Dev, cfg.Admin.SessionTTL)
	srv := web.NewServer(statsUC, backupUC, store, auth, cfg.Admin.APIKey, logger)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Admin.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("admin http listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	announcer.Announce(ctx, logging.Banner)

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	announcer.Announce(shutdownCtx, logging.ShutdownBanner)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http shutdown")
	}
	cancel()
	bot.Stop()
}
