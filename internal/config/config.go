// Package config resolves console settings from command-line flags and an optional config file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"liveconsole/internal/transport"
)

// Keys shared by flags and config files.
const (
	KeyHostname   = "hostname"
	KeyPort       = "port"
	KeyListenPort = "listen-port"
	KeyTimeout    = "timeout"
	KeyVerbose    = "verbose"
	KeyLogLevel   = "log-level"
	KeyLogFile    = "log-file"
	KeyTestMode   = "test-mode"
	KeyConfigFile = "config"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the resolved console configuration.
type Config struct {
	Hostname   string
	Port       int
	ListenPort int
	Timeout    time.Duration
	Verbose    bool
	LogLevel   string
	LogFile    string
	TestMode   bool
}

// SetDefaults registers the AbletonOSC defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyHostname, transport.DefaultHost)
	v.SetDefault(KeyPort, transport.DefaultPort)
	v.SetDefault(KeyListenPort, transport.DefaultListenPort)
	v.SetDefault(KeyTimeout, transport.DefaultTimeout)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTestMode, false)
}

// Load reads the config file named by the "config" key, if any, and returns the
// validated configuration. Flags bound to v take precedence over file values.
func Load(v *viper.Viper) (*Config, error) {
	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Hostname:   v.GetString(KeyHostname),
		Port:       v.GetInt(KeyPort),
		ListenPort: v.GetInt(KeyListenPort),
		Timeout:    v.GetDuration(KeyTimeout),
		Verbose:    v.GetBool(KeyVerbose),
		LogLevel:   v.GetString(KeyLogLevel),
		LogFile:    v.GetString(KeyLogFile),
		TestMode:   v.GetBool(KeyTestMode),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ports and timeout.
func (c *Config) Validate() error {
	if c.Hostname == "" {
		return fmt.Errorf("%w: hostname is empty", ErrInvalid)
	}
	if err := validatePort(KeyPort, c.Port); err != nil {
		return err
	}
	if err := validatePort(KeyListenPort, c.ListenPort); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalid, KeyTimeout, c.Timeout)
	}
	return nil
}

func validatePort(key string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: %s %d out of range 1-65535", ErrInvalid, key, port)
	}
	return nil
}

// TransportConfig returns the OSC client settings.
func (c *Config) TransportConfig() transport.Config {
	return transport.Config{
		Host:       c.Hostname,
		Port:       c.Port,
		ListenPort: c.ListenPort,
		Timeout:    c.Timeout,
		Verbose:    c.Verbose,
	}
}
