package config

import (
	"gopkg.in/yaml.v3"
	"os"
)

type Configuration struct {
	Server   ServerConfig   `yaml:"server"`
	Unboxing UnboxingConfig `yaml:"unboxing"`
}

type ServerConfig struct {
	Port          int           `yaml:"port"`
	Concurrency   int           `yaml:"concurrency"`
	RequestConfig RequestConfig `yaml:"request"`
	LogConfig     LogConfig     `yaml:"log"`
	SweepConfig   SweepConfig   `yaml:"sweep"`
}

type RequestConfig struct {
	// SizeLimit is the request body limit in MiB.
	SizeLimit int `yaml:"sizeLimit"`
}

type LogConfig struct {
	Format  string `yaml:"format"`
	Level   string `yaml:"level"`
	Output  string `yaml:"output"`
	LogPath string `yaml:"logPath"`
}

type SweepConfig struct {
	Schedule string `yaml:"schedule"`
}

type UnboxingConfig struct {
	MaxAttempts   int    `yaml:"maxAttempts"`
	AuditPageSize int    `yaml:"auditPageSize"`
	Seed          uint64 `yaml:"seed"`
}

func LoadConfiguration(configurationFilePath string) (*Configuration, error) {
	data, err := os.ReadFile(configurationFilePath)
	if err != nil {
		return nil, err
	}
	var config Configuration
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Configuration) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Concurrency == 0 {
		c.Server.Concurrency = 256
	}
	if c.Server.RequestConfig.SizeLimit == 0 {
		c.Server.RequestConfig.SizeLimit = 4
	}
	if c.Server.LogConfig.Format == "" {
		c.Server.LogConfig.Format = "text"
	}
	if c.Server.LogConfig.Level == "" {
		c.Server.LogConfig.Level = "info"
	}
	if c.Server.LogConfig.Output == "" {
		c.Server.LogConfig.Output = "stdout"
	}
	if c.Server.SweepConfig.Schedule == "" {
		c.Server.SweepConfig.Schedule = "@every 5m"
	}
	if c.Unboxing.MaxAttempts <= 0 {
		c.Unboxing.MaxAttempts = 3
	}
	if c.Unboxing.AuditPageSize <= 0 {
		c.Unboxing.AuditPageSize = 25
	}
}
