package app

import (
	"fmt"

	coreconfig "github.com/m3rciful/namebot/core/config"
	"github.com/m3rciful/namebot/core/database"
	"github.com/m3rciful/namebot/internal/names"
	"github.com/m3rciful/namebot/internal/pager"
)

// Telegram allows at most 100 buttons per keyboard; two columns of countries
// plus the navigation row must fit.
const maxPageSize = 90

// BotConfig tunes the conversation.
type BotConfig struct {
	PageSize    int `yaml:"page_size" envconfig:"BOT_PAGE_SIZE"`
	MaxAttempts int `yaml:"max_attempts" envconfig:"BOT_MAX_ATTEMPTS"`
}

// Config is the full bot configuration: the shared core sections plus the
// database and conversation settings.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database database.Config `yaml:"database"`
	Bot      BotConfig       `yaml:"bot"`
}

// CoreConfig returns the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// Load reads path (optional) and the environment, then validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates the configuration and fills defaults.
func (c *Config) Normalize() error {
	if err := coreconfig.Normalize(&c.Config); err != nil {
		return err
	}
	return c.Bot.normalize()
}

func (b *BotConfig) normalize() error {
	switch {
	case b.PageSize == 0:
		b.PageSize = pager.DefaultSize
	case b.PageSize < 0 || b.PageSize > maxPageSize:
		return fmt.Errorf("bot.page_size must be between 1 and %d, got %d", maxPageSize, b.PageSize)
	}
	switch {
	case b.MaxAttempts == 0:
		b.MaxAttempts = names.DefaultMaxAttempts
	case b.MaxAttempts < len(names.Triple{}):
		return fmt.Errorf("bot.max_attempts must be at least %d, got %d", len(names.Triple{}), b.MaxAttempts)
	}
	return nil
}
