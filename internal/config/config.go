package config

import (
	"fmt"
	"time"
)

type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Sources       SourcesConfig       `yaml:"sources"`
	Classify      ClassifyConfig      `yaml:"classify"`
	Notify        NotifyConfig        `yaml:"notify"`
	Storage       StorageConfig       `yaml:"storage"`
	Scheduler     SchedulerConfig     `yaml:"scheduler"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type HTTPConfig struct {
	UserAgent          string `yaml:"user_agent"`
	SecondaryUserAgent string `yaml:"secondary_user_agent"`
	Referer            string `yaml:"referer"`
	SecondaryReferer   string `yaml:"secondary_referer"`
	AcceptLanguage     string `yaml:"accept_language"`
	TimeoutS           int    `yaml:"timeout_s"`
	Retries            int    `yaml:"retries"`
	RetryDelayS        int    `yaml:"retry_delay_s"`
}

type ClassifyConfig struct {
	// Default is the category assigned when no keyword group matches.
	Default string `yaml:"default"`
	// Rules override the built-in keyword tables; order is precedence.
	Rules []KeywordRule `yaml:"rules"`
}

type KeywordRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

type NotifyConfig struct {
	// BatchSize caps itemized postings per message (1..10).
	BatchSize int         `yaml:"batch_size"`
	SMS       SMSConfig   `yaml:"sms"`
	Email     EmailConfig `yaml:"email"`
}

// SMSConfig describes the Twilio channel. AccountSID and AuthToken come from
// the environment (TWILIO_SID / TWILIO_TOKEN), never from the YAML file.
type SMSConfig struct {
	From       string   `yaml:"from"`
	To         []string `yaml:"to"`
	AccountSID string   `yaml:"-"`
	AuthToken  string   `yaml:"-"`
}

// EmailConfig describes the SMTP channel. Username and Password come from
// the environment (SMTP_USER / SMTP_PASS).
type EmailConfig struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
	Subject  string   `yaml:"subject"`
	Username string   `yaml:"-"`
	Password string   `yaml:"-"`
}

type StorageConfig struct {
	Driver   string `yaml:"driver"` // "file" or "redis"
	Path     string `yaml:"path"`   // state file path for the file driver
	RedisKey string `yaml:"redis_key"`
	RedisURL string `yaml:"-"` // from REDIS_URL
}

type SchedulerConfig struct {
	Mode      string `yaml:"mode"` // "oneshot", "interval" or "cron"
	IntervalS int    `yaml:"interval_s"`
	CronExpr  string `yaml:"cron_expr"`
}

type ObservabilityConfig struct {
	LogPath  string `yaml:"log_path"` // empty disables the rotated file sink
	LogLevel string `yaml:"log_level"`
}

// Validation
func (c *Config) Validate() error {
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent is required")
	}
	if c.HTTP.SecondaryUserAgent == "" {
		return fmt.Errorf("http.secondary_user_agent is required")
	}
	if c.HTTP.TimeoutS <= 0 {
		return fmt.Errorf("http.timeout_s must be > 0")
	}
	if c.HTTP.Retries < 0 {
		return fmt.Errorf("http.retries must be >= 0")
	}
	if c.HTTP.RetryDelayS < 0 {
		return fmt.Errorf("http.retry_delay_s must be >= 0")
	}
	if err := c.Sources.validate(); err != nil {
		return err
	}
	if c.Classify.Default == "" {
		return fmt.Errorf("classify.default is required")
	}
	for i, rule := range c.Classify.Rules {
		if rule.Category == "" {
			return fmt.Errorf("classify.rules[%d].category is required", i)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("classify.rules[%d].keywords is required", i)
		}
	}
	if c.Notify.BatchSize < 1 || c.Notify.BatchSize > 10 {
		return fmt.Errorf("notify.batch_size must be between 1 and 10")
	}
	if c.Storage.Driver != "file" && c.Storage.Driver != "redis" {
		return fmt.Errorf("storage.driver must be 'file' or 'redis'")
	}
	if c.Storage.Driver == "file" && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required for the file driver")
	}
	if c.Storage.Driver == "redis" && c.Storage.RedisKey == "" {
		return fmt.Errorf("storage.redis_key is required for the redis driver")
	}
	if c.Scheduler.Mode != "oneshot" && c.Scheduler.Mode != "interval" && c.Scheduler.Mode != "cron" {
		return fmt.Errorf("scheduler.mode must be 'oneshot', 'interval' or 'cron'")
	}
	if c.Scheduler.Mode == "interval" && c.Scheduler.IntervalS <= 0 {
		return fmt.Errorf("scheduler.interval_s must be > 0 when mode is 'interval'")
	}
	if c.Scheduler.Mode == "cron" && c.Scheduler.CronExpr == "" {
		return fmt.Errorf("scheduler.cron_expr must be set when mode is 'cron'")
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("observability.log_level is required")
	}
	return nil
}

// Getters
func (c *Config) GetHTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutS) * time.Second
}

func (c *Config) GetRetryDelay() time.Duration {
	return time.Duration(c.HTTP.RetryDelayS) * time.Second
}

func (c *Config) GetSchedulerInterval() time.Duration {
	return time.Duration(c.Scheduler.IntervalS) * time.Second
}
