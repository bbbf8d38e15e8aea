package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token    string  `yaml:"token"`
	Workers  int     `yaml:"workers"` // polling workers
	OwnerIDs []int64 `yaml:"owner_ids"`
}

// ChatsConfig seeds the chat wiring on first run. After that the values
// live in the settings table and are changed with owner commands.
type ChatsConfig struct {
	AdminChatID    int64 `yaml:"admin_chat_id"`
	UserChatID     int64 `yaml:"user_chat_id"`
	LogChannelID   int64 `yaml:"log_channel_id"`
	NotesChannelID int64 `yaml:"notes_channel_id"`
	TestChannelID  int64 `yaml:"test_channel_id"`
}

type RelayConfig struct {
	DeleteTimerSeconds   int `yaml:"delete_timer_seconds"` // 1..60
	MappingRetentionDays int `yaml:"mapping_retention_days"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AdminConfig struct {
	Port          int           `yaml:"port"`
	APIKey        string        `yaml:"api_key"`
	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type SchedulerConfig struct {
	BirthdayInterval time.Duration `yaml:"birthday_interval"`
	ReminderInterval time.Duration `yaml:"reminder_interval"`
	Timezone         string        `yaml:"timezone"`
}

type Config struct {
	Bot       BotConfig       `yaml:"bot"`
	Chats     ChatsConfig     `yaml:"chats"`
	Relay     RelayConfig     `yaml:"relay"`
	Log       LogConfig       `yaml:"log"`
	Admin     AdminConfig     `yaml:"admin"`
	Database  DatabaseConfig  `yaml:"database"`
	Scheduler SchedulerConfig `yaml:"scheduler"`

	Runtime RuntimeConfig `yaml:"-"`
}

const (
	DefaultDatabasePath = "bot_database.db"
	MinDeleteTimer      = 1
	MaxDeleteTimer      = 60
)

// LoadConfig reads the YAML config and overlays BOT_TOKEN from the
// environment. A .env file in the working directory is honored when present.
func LoadConfig(path string, dev bool) (*Config, error) {
	_ = godotenv.Load()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if tok := os.Getenv("BOT_TOKEN"); tok != "" {
		cfg.Bot.Token = tok
	}

	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath
	}
	if cfg.Relay.DeleteTimerSeconds == 0 {
		cfg.Relay.DeleteTimerSeconds = 30
	}
	if cfg.Relay.MappingRetentionDays <= 0 {
		cfg.Relay.MappingRetentionDays = 30
	}
	if cfg.Scheduler.BirthdayInterval <= 0 {
		cfg.Scheduler.BirthdayInterval = 30 * time.Minute
	}
	if cfg.Scheduler.ReminderInterval <= 0 {
		cfg.Scheduler.ReminderInterval = 30 * time.Second
	}
	if cfg.Scheduler.Timezone == "" {
		cfg.Scheduler.Timezone = "Europe/Kyiv"
	}
	if cfg.Admin.Port <= 0 {
		cfg.Admin.Port = 8080
	}
	if cfg.Admin.SessionTTL <= 0 {
		cfg.Admin.SessionTTL = 30 * time.Minute
	}

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot token is required (BOT_TOKEN env or bot.token)")
	}
	if len(cfg.Bot.OwnerIDs) == 0 {
		return nil, errors.New("bot.owner_ids must list at least one owner")
	}
	if t := cfg.Relay.DeleteTimerSeconds; t < MinDeleteTimer || t > MaxDeleteTimer {
		return nil, fmt.Errorf("relay.delete_timer_seconds must be %d..%d, got %d", MinDeleteTimer, MaxDeleteTimer, t)
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
