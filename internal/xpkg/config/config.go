package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Store   *RecordStore `yaml:"record_store"`
	Billing *Billing     `yaml:"billing"`
}

// RecordStore holds credentials for the record store that owns the
// Orders / Employees / Pay Periods tables.
type RecordStore struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	BaseID  string `yaml:"base_id"`
}

type Billing struct {
	BaseURL       string `yaml:"base_url"`
	APIKey        string `yaml:"api_key"`
	WebhookSecret string `yaml:"webhook_secret"`
}

func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv builds the config from environment variables only, for
// deployments that ship no yaml file.
func LoadDotEnv() (*Config, error) {
	cfg := &Config{
		Store:   &RecordStore{},
		Billing: &Billing{},
	}
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets environment variables override (or fill in) file values, so
// secrets never need to live in the yaml.
func (c *Config) applyEnv() {
	if c.Store == nil {
		c.Store = &RecordStore{}
	}
	if c.Billing == nil {
		c.Billing = &Billing{}
	}

	c.Store.BaseURL = getEnv("RECORD_STORE_BASE_URL", c.Store.BaseURL)
	c.Store.APIKey = getEnv("RECORD_STORE_API_KEY", c.Store.APIKey)
	c.Store.BaseID = getEnv("RECORD_STORE_BASE_ID", c.Store.BaseID)

	c.Billing.BaseURL = getEnv("BILLING_BASE_URL", c.Billing.BaseURL)
	c.Billing.APIKey = getEnv("BILLING_API_KEY", c.Billing.APIKey)
	c.Billing.WebhookSecret = getEnv("BILLING_WEBHOOK_SECRET", c.Billing.WebhookSecret)
}

func (c *Config) validate() error {
	if c.Store.APIKey == "" {
		return fmt.Errorf("record store api key is not set")
	}
	if c.Store.BaseID == "" {
		return fmt.Errorf("record store base id is not set")
	}
	if c.Billing.APIKey == "" {
		return fmt.Errorf("billing api key is not set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
