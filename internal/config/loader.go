package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadConfig(filePath string) (*Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close config file: %v", closeErr)
		}
	}()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Notify.BatchSize == 0 {
		c.Notify.BatchSize = 6
	}
	if c.Classify.Default == "" {
		c.Classify.Default = "Software Engineering"
	}
	if c.Scheduler.Mode == "" {
		c.Scheduler.Mode = "oneshot"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "file"
	}
	if c.Storage.Driver == "file" && c.Storage.Path == "" {
		c.Storage.Path = "seen.json"
	}
	if c.Storage.Driver == "redis" && c.Storage.RedisKey == "" {
		c.Storage.RedisKey = "intern-watch:state"
	}
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}
}

// applyEnv overlays secrets and deployment-specific values from the
// environment. Credentials never live in the YAML file.
func (c *Config) applyEnv() {
	c.Notify.SMS.AccountSID = os.Getenv("TWILIO_SID")
	c.Notify.SMS.AuthToken = os.Getenv("TWILIO_TOKEN")
	if from := os.Getenv("TWILIO_FROM"); from != "" {
		c.Notify.SMS.From = from
	}
	if to := splitList(os.Getenv("SMS_TO_LIST")); len(to) > 0 {
		c.Notify.SMS.To = to
	}
	c.Notify.Email.Username = os.Getenv("SMTP_USER")
	c.Notify.Email.Password = os.Getenv("SMTP_PASS")
	if to := splitList(os.Getenv("EMAIL_TO_LIST")); len(to) > 0 {
		c.Notify.Email.To = to
	}
	c.Storage.RedisURL = os.Getenv("REDIS_URL")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
