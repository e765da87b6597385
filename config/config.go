// Package config loads formbot settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tbxark/docform/artifact"
	"github.com/tbxark/docform/command"
	"github.com/tbxark/docform/schema"
	"github.com/tbxark/docform/session"
	"github.com/tbxark/docform/types"
	"gopkg.in/yaml.v3"
)

const DefaultFileName = "formbot.yml"

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Template TemplateConfig `yaml:"template"`
	Output   OutputConfig   `yaml:"output"`
	Store    StoreConfig    `yaml:"store"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Form     FormConfig     `yaml:"form"`
}

type TelegramConfig struct {
	Token       string `yaml:"token"`
	PollTimeout int    `yaml:"poll_timeout"` // seconds
	Debug       bool   `yaml:"debug"`
}

type TemplateConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type StoreConfig struct {
	Driver string      `yaml:"driver"`
	Redis  RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type HTTPConfig struct {
	// Addr of the health server; empty disables it.
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Mode string `yaml:"mode"` // "prod" or "dev"
}

// FormConfig replaces the built-in invoice form when Fields is set.
type FormConfig struct {
	PrimaryKey string            `yaml:"primary_key"`
	Fields     []types.FieldSpec `yaml:"fields"`
	Naming     artifact.Namer    `yaml:"naming"`
	Messages   session.Messages  `yaml:"messages"`
}

func Default() *Config {
	return &Config{
		Telegram: TelegramConfig{PollTimeout: 60},
		Template: TemplateConfig{Path: "template.docx", Watch: true},
		Output:   OutputConfig{Dir: "generated"},
		Store: StoreConfig{
			Driver: StoreMemory,
			Redis:  RedisConfig{TTL: 24 * time.Hour},
		},
		HTTP: HTTPConfig{Addr: ":8080"},
		Log:  LogConfig{Mode: "dev"},
		Form: FormConfig{
			PrimaryKey: schema.InvoicePrimaryKey,
			Fields:     schema.InvoiceFields(),
			Naming:     artifact.NewNamer(schema.InvoicePrimaryKey),
			Messages:   session.DefaultMessages(),
		},
	}
}

// Load reads path over the defaults. A missing file is not an error. Environment
// variables are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv(os.LookupEnv)
	cfg.Form.Messages = cfg.Form.Messages.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(name string, dst *string) {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("BOT_TOKEN", &c.Telegram.Token)
	set("FORMBOT_TEMPLATE", &c.Template.Path)
	set("FORMBOT_OUTPUT_DIR", &c.Output.Dir)
	set("FORMBOT_STORE", &c.Store.Driver)
	set("REDIS_ADDR", &c.Store.Redis.Addr)
	set("REDIS_PASSWORD", &c.Store.Redis.Password)
	set("FORMBOT_HTTP_ADDR", &c.HTTP.Addr)
	set("FORMBOT_LOG_MODE", &c.Log.Mode)
}

func (c *Config) Validate() error {
	if c.Template.Path == "" {
		return errors.New("template.path is required")
	}
	if c.Output.Dir == "" {
		return errors.New("output.dir is required")
	}
	switch c.Store.Driver {
	case StoreMemory:
	case StoreRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New("store.redis.addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}
	if c.Telegram.PollTimeout < 0 {
		return errors.New("telegram.poll_timeout must not be negative")
	}
	if !strings.Contains(c.Form.Messages.Done, "%s") {
		return errors.New("form.messages.done must contain %s for the document name")
	}
	if _, err := c.Schema(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Schema() (*schema.Schema, error) {
	s, err := schema.New(c.Form.Fields, c.Form.PrimaryKey)
	if err != nil {
		return nil, fmt.Errorf("form: %w", err)
	}
	return s, nil
}

func (c *Config) Namer() artifact.Namer {
	n := c.Form.Naming
	n.PrimaryKey = c.Form.PrimaryKey
	return n
}

func (c *Config) Messages() session.Messages {
	return c.Form.Messages.WithDefaults()
}

// CommandParser recognizes the configured keyboard buttons besides the built-in
// keywords.
func (c *Config) CommandParser() *command.LocalCommandParser {
	m := c.Messages()
	p := command.NewLocalCommandParser()
	p.StartTokens = []string{m.StartButton}
	p.CancelTokens = []string{m.CancelButton}
	return p
}
