package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/tradejournal"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration file. They are also
// passed to extensions.
const (
	EnvConfig      = "TJ_CONFIG"
	EnvJournal     = "TJ_JOURNAL"
	EnvActivity    = "TJ_ACTIVITY"
	EnvRules       = "TJ_RULES"
	EnvCurrency    = "TJ_CURRENCY"
	EnvPrices      = "TJ_PRICES"
	EnvConcurrency = "TJ_CONCURRENCY"
	EnvLogLevel    = "TJ_LOG_LEVEL"
	EnvListen      = "TJ_LISTEN"
	EnvYahooURL    = "TJ_YAHOO_URL"
)

// Config is the resolved application configuration.
//
// Values come, by increasing priority, from the defaults, the yaml
// configuration file, the environment (a .env file included) and the command
// line flags.
type Config struct {
	Journal     string        `yaml:"journal"`
	Activity    string        `yaml:"activity"` // empty disables the activity log.
	Rules       string        `yaml:"rules"`
	Currency    string        `yaml:"currency"`
	Prices      bool          `yaml:"prices"` // fetch live prices.
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
	LogLevel    string        `yaml:"log_level"`
	Listen      string        `yaml:"listen"`
	YahooURL    string        `yaml:"yahoo_url"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Journal:     "journal.jsonl",
		Activity:    "activity.jsonl",
		Rules:       "rules.md",
		Currency:    "USD",
		Prices:      true,
		Concurrency: tradejournal.DefaultConcurrency,
		Timeout:     10 * time.Second,
		LogLevel:    "warn",
		Listen:      ":8080",
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile   = flag.String("config", "tradejournal.yaml", "Path to the yaml configuration file")
	journalFile  = flag.String("journal", "journal.jsonl", "Path to the journal file (JSONL format)")
	activityFile = flag.String("activity", "activity.jsonl", "Path to the activity log (JSONL format), empty to disable it")
	rulesFile    = flag.String("rules", "rules.md", "Path to the trading rules file (markdown)")
	currency     = flag.String("currency", "USD", "Currency of all prices")
	offline      = flag.Bool("offline", false, "Do not fetch live prices")
	concurrency  = flag.Int("concurrency", tradejournal.DefaultConcurrency, "Maximum number of concurrent price lookups")
	logLevel     = flag.String("log-level", "warn", "Diagnostic log level (debug, info, warn, error)")
	rawMarkdown  = flag.Bool("raw", false, "Print reports as raw markdown")
)

// LoadConfig resolves the configuration. Only the flags of flags that were
// explicitly set override the other sources.
func LoadConfig(flags *flag.FlagSet) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	set := make(map[string]*flag.Flag)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = f })

	cfg := DefaultConfig()

	path, explicit := os.Getenv(EnvConfig), os.Getenv(EnvConfig) != ""
	if f, ok := set["config"]; ok {
		path, explicit = f.Value.String(), true
	}
	if path == "" {
		path = "tradejournal.yaml"
	}
	if err := cfg.readYAML(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.readEnv(); err != nil {
		return nil, err
	}

	for name, f := range set {
		v := f.Value.String()
		switch name {
		case "journal":
			cfg.Journal = v
		case "activity":
			cfg.Activity = v
		case "rules":
			cfg.Rules = v
		case "currency":
			cfg.Currency = v
		case "offline":
			cfg.Prices = v != "true"
		case "concurrency":
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid -concurrency %q: %w", v, err)
			}
			cfg.Concurrency = n
		case "log-level":
			cfg.LogLevel = v
		}
	}
	return cfg, cfg.Validate()
}

func (c *Config) readYAML(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(content, c); err != nil {
		return fmt.Errorf("invalid configuration file %q: %w", path, err)
	}
	return nil
}

func (c *Config) readEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setString(EnvJournal, &c.Journal)
	setString(EnvActivity, &c.Activity)
	setString(EnvRules, &c.Rules)
	setString(EnvCurrency, &c.Currency)
	setString(EnvLogLevel, &c.LogLevel)
	setString(EnvListen, &c.Listen)
	setString(EnvYahooURL, &c.YahooURL)

	if v := os.Getenv(EnvPrices); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPrices, v, err)
		}
		c.Prices = b
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvConcurrency, v, err)
		}
		c.Concurrency = n
	}
	return nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Journal) == "" {
		return errors.New("the journal path is required")
	}
	if strings.TrimSpace(c.Rules) == "" {
		return errors.New("the rules path is required")
	}
	if strings.TrimSpace(c.Currency) == "" {
		return errors.New("the currency is required")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}

// Environ returns the configuration as environment variables.
func (c *Config) Environ() []string {
	return []string{
		EnvJournal + "=" + c.Journal,
		EnvActivity + "=" + c.Activity,
		EnvRules + "=" + c.Rules,
		EnvCurrency + "=" + c.Currency,
		EnvPrices + "=" + strconv.FormatBool(c.Prices),
		EnvConcurrency + "=" + strconv.Itoa(c.Concurrency),
		EnvLogLevel + "=" + c.LogLevel,
		EnvListen + "=" + c.Listen,
	}
}
