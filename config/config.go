package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	yaml "gopkg.in/yaml.v2"
)

const (
	defaultAPIURL              = "https://api.heroku.com"
	defaultPollIntervalSeconds = 2
	defaultMaxHistoryPages     = 10
)

// Config holds the settings for talking to the build platform
type Config struct {
	APIURL              string `yaml:"apiURL"`
	APIToken            string `yaml:"apiToken"`
	PollIntervalSeconds int    `yaml:"pollIntervalSeconds"`
	MaxHistoryPages     int    `yaml:"maxHistoryPages"`
}

// DefaultPath returns the location of the per-user config file
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".build-push.yaml"
	}
	return filepath.Join(home, ".build-push.yaml")
}

// Read loads the config file at path; a missing file yields the defaults
func Read(path string) (config Config, err error) {

	config = Config{}

	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		log.Debug().Msgf("Config file %v does not exist, using defaults", path)
		config.SetDefaults()
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("Reading config file %v failed: %w", path, err)
	}

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("Unmarshalling config file %v failed: %w", path, err)
	}

	config.SetDefaults()

	return config, nil
}

// SetDefaults fills in unset values
func (c *Config) SetDefaults() {
	if c.APIURL == "" {
		c.APIURL = defaultAPIURL
	}
	if c.PollIntervalSeconds <= 0 {
		c.PollIntervalSeconds = defaultPollIntervalSeconds
	}
	if c.MaxHistoryPages <= 0 {
		c.MaxHistoryPages = defaultMaxHistoryPages
	}
}

// OverrideFromEnv lets BUILD_PUSH_API_URL and BUILD_PUSH_API_TOKEN win over the file
func (c *Config) OverrideFromEnv(getenv func(string) string) {
	if v := getenv("BUILD_PUSH_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := getenv("BUILD_PUSH_API_TOKEN"); v != "" {
		c.APIToken = v
	}
}

// PollInterval returns the wait between build status polls
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}
