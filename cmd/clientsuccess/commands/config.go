package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/clientsuccess/internal/constants"
	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
	"github.com/fivetwenty-io/clientsuccess/pkg/csclient"
)

// Config is the persisted CLI configuration. The password is never written
// to disk; it comes from CLIENTSUCCESS_PASSWORD or the login prompt.
type Config struct {
	URL      string        `mapstructure:"url" yaml:"url,omitempty"`
	Email    string        `mapstructure:"email" yaml:"email,omitempty"`
	Password string        `mapstructure:"password" yaml:"-"`
	Token    string        `mapstructure:"token" yaml:"token,omitempty"`
	Output   string        `mapstructure:"output" yaml:"output,omitempty"`
	Usage    UsageSettings `mapstructure:"usage" yaml:"usage,omitempty"`
}

// UsageSettings configures the Usage API.
type UsageSettings struct {
	ProjectID  string `mapstructure:"project_id" yaml:"project_id,omitempty"`
	APIKey     string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	APIVersion string `mapstructure:"api_version" yaml:"api_version,omitempty"`
	URL        string `mapstructure:"url" yaml:"url,omitempty"`
}

func loadConfig() (*Config, error) {
	config := &Config{}

	err := viper.Unmarshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	// Unmarshal only sees keys viper already knows about; values that exist
	// only in the environment are picked up here.
	envBacked := map[string]*string{
		"url":               &config.URL,
		"email":             &config.Email,
		"password":          &config.Password,
		"token":             &config.Token,
		"usage.project_id":  &config.Usage.ProjectID,
		"usage.api_key":     &config.Usage.APIKey,
		"usage.api_version": &config.Usage.APIVersion,
		"usage.url":         &config.Usage.URL,
	}
	for key, dst := range envBacked {
		if *dst == "" {
			*dst = viper.GetString(key)
		}
	}

	return config, nil
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".clientsuccess")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	return nil
}

func newLogger() hclog.Logger {
	level := hclog.Warn
	if viper.GetBool("verbose") {
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "clientsuccess",
		Level:  level,
		Output: os.Stderr,
	})
}

// session bundles the API client built for one command run.
type session struct {
	api     clientsuccess.API
	logger  hclog.Logger
	metrics *clientsuccess.MetricsCollector
}

// newSession creates an Open API client from the CLI configuration. A saved
// token wins over email and password.
func newSession() (*session, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := newLogger()
	metrics := clientsuccess.NewMetricsCollector()

	apiConfig := &clientsuccess.Config{
		Email:    config.Email,
		Password: config.Password,
		URL:      config.URL,
		Logger:   logger,
		Debug:    viper.GetBool("verbose"),
		RequestInterceptors: []clientsuccess.RequestInterceptor{
			clientsuccess.MetricsRequestInterceptor(metrics),
		},
		ResponseInterceptors: []clientsuccess.ResponseInterceptor{
			clientsuccess.MetricsResponseInterceptor(metrics),
			clientsuccess.LoggingResponseInterceptor(logger),
		},
	}

	var api clientsuccess.API

	switch {
	case config.Token != "":
		api, err = csclient.NewWithToken(apiConfig, config.Token)
	case config.Email != "" && config.Password != "":
		api, err = csclient.New(apiConfig)
	default:
		return nil, constants.ErrNoCredentials
	}

	if err != nil {
		return nil, err
	}

	return &session{api: api, logger: logger, metrics: metrics}, nil
}

// close logs the per-endpoint call summary at debug level.
func (s *session) close() {
	endpoints := s.metrics.Endpoints()

	names := make([]string, 0, len(endpoints))
	for name := range endpoints {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		m := endpoints[name]
		s.logger.Debug("endpoint summary", "endpoint", name,
			"requests", m.TotalRequests, "errors", m.TotalErrors, "avg_latency", m.AverageLatency)
	}
}

func newUsageClient() (clientsuccess.UsageAPI, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if config.Usage.ProjectID == "" || config.Usage.APIKey == "" {
		return nil, constants.ErrNoUsageConfigured
	}

	return csclient.NewUsage(&clientsuccess.UsageConfig{
		ProjectID:  config.Usage.ProjectID,
		APIKey:     config.Usage.APIKey,
		APIVersion: config.Usage.APIVersion,
		URL:        config.Usage.URL,
		Logger:     newLogger(),
		Debug:      viper.GetBool("verbose"),
	})
}
