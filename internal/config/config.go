package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPort matches the port the mobile client is built against.
	DefaultPort = 5000

	// DefaultLogDir is resolved relative to the working directory.
	DefaultLogDir = "logs"

	defaultArchivePrefix = "batches"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Logs struct {
		Dir string `yaml:"dir"`
	} `yaml:"logs"`

	Archive struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
		Prefix     string `yaml:"prefix"`
	} `yaml:"archive"`
}

// Load reads config.yaml. A missing file is not an error: the server
// runs on pure defaults so the harness works with zero setup.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.SetDefaults()
			return &cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return &cfg, nil
}

// SetDefaults fills zero-valued fields.
func (c *Config) SetDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Logs.Dir == "" {
		c.Logs.Dir = DefaultLogDir
	}
	if c.Archive.Prefix == "" {
		c.Archive.Prefix = defaultArchivePrefix
	}
}

// Addr is the listen address, all interfaces.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
