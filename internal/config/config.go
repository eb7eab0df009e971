// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token string `yaml:"token"`
	// Channel is the gate channel username, without the leading "@".
	Channel string `yaml:"channel"`
	// WebAppURL is the companion card-picker surface offered from /start.
	WebAppURL string `yaml:"web_app_url"`
	Mode      string `yaml:"mode"`    // polling | webhook (future)
	Workers   int    `yaml:"workers"` // polling workers
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

// unsetHour marks broadcast.hour as absent from the file. Hour 0 (midnight)
// is a valid value, so the zero value cannot double as "unset".
const unsetHour = -1

type BroadcastConfig struct {
	// ChatID is the destination for daily scheduled sends. Required: there is
	// no safe default, and the process refuses to start without it.
	ChatID int64 `yaml:"chat_id"`
	Hour   int   `yaml:"hour"` // local hour of day, 0-23
}

type DataConfig struct {
	CardsFile    string `yaml:"cards_file"`
	ScheduleFile string `yaml:"schedule_file"`
}

type RedisConfig struct {
	// URL empty disables the rate limiter entirely.
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RateLimitConfig struct {
	PerCommand    int `yaml:"per_command"`    // allowed calls per window
	WindowSeconds int `yaml:"window_seconds"` // sliding window length
}

type WebConfig struct {
	Addr string `yaml:"addr"`
}

type AdminConfig struct {
	Port int `yaml:"port"` // healthz + metrics listener of the bot process
}

type Config struct {
	Bot       BotConfig       `yaml:"bot"`
	Log       LogConfig       `yaml:"log"`
	Broadcast BroadcastConfig `yaml:"broadcast"`
	Data      DataConfig      `yaml:"data"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Web       WebConfig       `yaml:"web"`
	Admin     AdminConfig     `yaml:"admin"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Config{Broadcast: BroadcastConfig{Hour: unsetHour}}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Bot.Token == "" {
		c.Bot.Token = os.Getenv("BOT_TOKEN")
	}
	if c.Bot.Workers <= 0 {
		c.Bot.Workers = 8
	}
	if c.Bot.Mode == "" {
		c.Bot.Mode = "polling"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Broadcast.Hour == unsetHour {
		c.Broadcast.Hour = 10
	}
	if c.Data.CardsFile == "" {
		c.Data.CardsFile = "data/cards.json"
	}
	if c.Data.ScheduleFile == "" {
		c.Data.ScheduleFile = "data/schedule.json"
	}
	if c.RateLimit.PerCommand <= 0 {
		c.RateLimit.PerCommand = 20
	}
	if c.RateLimit.WindowSeconds <= 0 {
		c.RateLimit.WindowSeconds = 60
	}
	if c.Web.Addr == "" {
		c.Web.Addr = ":8081"
	}
	if c.Admin.Port == 0 {
		c.Admin.Port = 8090
	}
}

// ValidateBot checks everything the bot process cannot run without.
func (c *Config) ValidateBot() error {
	if c.Bot.Token == "" {
		return errors.New("bot.token is required")
	}
	if c.Bot.Channel == "" {
		return errors.New("bot.channel is required")
	}
	if c.Bot.WebAppURL == "" {
		return errors.New("bot.web_app_url is required")
	}
	if c.Broadcast.ChatID == 0 {
		return errors.New("broadcast.chat_id is required; refusing to schedule sends to an unset destination")
	}
	if c.Broadcast.Hour < 0 || c.Broadcast.Hour > 23 {
		return fmt.Errorf("broadcast.hour out of range: %d", c.Broadcast.Hour)
	}
	return nil
}

// ValidateWeb checks everything the web process cannot run without.
func (c *Config) ValidateWeb() error {
	if c.Web.Addr == "" {
		return errors.New("web.addr is required")
	}
	return nil
}
