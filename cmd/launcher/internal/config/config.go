// Package config manages launcher configuration
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/FrogdreamStudios/launcher/pkg/compat"
	"github.com/FrogdreamStudios/launcher/pkg/launch"
	"github.com/FrogdreamStudios/launcher/pkg/mojang"
	"github.com/FrogdreamStudios/launcher/pkg/natives"
)

// Config holds the launcher configuration
type Config struct {
	Root    string        `mapstructure:"root"`
	Network NetworkConfig `mapstructure:"network"`
	Runtime RuntimeConfig `mapstructure:"runtime"`
	Log     LogConfig     `mapstructure:"log"`
}

// NetworkConfig holds endpoint and retry configuration
type NetworkConfig struct {
	ManifestURL string `mapstructure:"manifest_url"`
	RegistryURL string `mapstructure:"registry_url"`
	Timeout     int    `mapstructure:"timeout"`
	Retries     int    `mapstructure:"retries"`
}

// RuntimeConfig holds Java runtime selection configuration
type RuntimeConfig struct {
	JavaPath      string `mapstructure:"java_path"`
	AltJavaPath   string `mapstructure:"alt_java_path"`
	RosettaCutoff string `mapstructure:"rosetta_cutoff"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from file, environment or defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("launcher")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.dream-launcher")
	v.AddConfigPath(".")

	// Environment variable overrides
	v.SetEnvPrefix("LAUNCHER")
	v.AutomaticEnv()

	v.SetDefault("root", mojang.DefaultInstallRoot())
	v.SetDefault("network.manifest_url", mojang.DefaultManifestURL)
	v.SetDefault("network.registry_url", natives.DefaultRegistryURL)
	v.SetDefault("network.timeout", 30)
	v.SetDefault("network.retries", 3)
	v.SetDefault("runtime.java_path", "java")
	v.SetDefault("runtime.alt_java_path", launch.DefaultConfig().AltJavaPath)
	v.SetDefault("runtime.rosetta_cutoff", compat.DefaultRosettaCutoff.String())
	v.SetDefault("log.level", "info")

	// Read config file (ignore if not found - use defaults)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// RosettaCutoff parses the configured emulation cutoff, falling back to
// the default when the value is malformed.
func (c *Config) RosettaCutoff() compat.Version {
	if v, ok := compat.ParseVersion(c.Runtime.RosettaCutoff); ok {
		return v
	}
	return compat.DefaultRosettaCutoff
}

// FetchTimeout returns the per-request timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Network.Timeout) * time.Second
}
