package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Gemini struct {
		ApiKey          string  `yaml:"apiKey"`
		Model           string  `yaml:"model"`
		Temperature     float32 `yaml:"temperature"`
		MaxOutputTokens int32   `yaml:"maxOutputTokens"`
	} `yaml:"gemini"`

	// Assessment holds the question-flow bounds. The AI fields are pointers
	// so an explicit zero (maxAiQuestions: 0 disables follow-ups,
	// aiWindowStart: 0 opens the window at the first question) is
	// distinguishable from an absent key; absent keys get defaults in
	// ApplyDefaults.
	Assessment struct {
		MaxQuestions   int  `yaml:"maxQuestions"`
		MaxAiQuestions *int `yaml:"maxAiQuestions"`
		AiWindowStart  *int `yaml:"aiWindowStart"`
		AiWindowEnd    *int `yaml:"aiWindowEnd"`
		SessionTTL     int  `yaml:"sessionTtlMinutes"`
	} `yaml:"assessment"`

	Google struct {
		ClientId string `yaml:"clientId"`
	} `yaml:"google"`

	JWT struct {
		Secret string `yaml:"secret"`
		Expiry int    `yaml:"expiry"` // token expiry in hours
	} `yaml:"jwt"`

	SMTP struct {
		Host         string `yaml:"host"`
		Port         int    `yaml:"port"`
		Username     string `yaml:"username"`
		Password     string `yaml:"password"`
		SenderEmail  string `yaml:"senderEmail"`
		SenderName   string `yaml:"senderName"`
		ContactInbox string `yaml:"contactInbox"` // where contact/demo requests are forwarded
	} `yaml:"smtp"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
}

// LoadConfig reads the configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

func intPtr(v int) *int { return &v }

// ApplyDefaults fills unset assessment and model options with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Assessment.MaxQuestions == 0 {
		c.Assessment.MaxQuestions = 12
	}
	if c.Assessment.MaxAiQuestions == nil {
		c.Assessment.MaxAiQuestions = intPtr(2)
	}
	if c.Assessment.AiWindowStart == nil {
		c.Assessment.AiWindowStart = intPtr(8)
	}
	if c.Assessment.AiWindowEnd == nil {
		c.Assessment.AiWindowEnd = intPtr(9)
	}
	if c.Assessment.SessionTTL == 0 {
		c.Assessment.SessionTTL = 60
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.8
	}
	if c.Gemini.MaxOutputTokens == 0 {
		c.Gemini.MaxOutputTokens = 512
	}
	if c.JWT.Expiry == 0 {
		c.JWT.Expiry = 24
	}
}
