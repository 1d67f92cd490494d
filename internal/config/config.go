// Package config loads, validates, and persists the application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/jabrena/polar-metrics/internal/constants"
	"github.com/jabrena/polar-metrics/internal/logger"
)

// Config holds all configuration settings.
type Config struct {
	// ClientID is the OAuth2 client identifier issued by the Polar admin console.
	ClientID string `mapstructure:"client_id"`
	// ClientSecret is the OAuth2 client secret paired with ClientID.
	ClientSecret string `mapstructure:"client_secret"`
	// MemberID identifies the account that registration, profile, and export operate on.
	MemberID string `mapstructure:"member_id"`
	// AuthorizationCode is the single-use OAuth2 code exchanged for an access token.
	// It is filled either by hand, via the POLAR_AUTHORIZATION_CODE environment
	// variable, the --code flag, or the `auth login` browser flow.
	AuthorizationCode string `mapstructure:"authorization_code"`
	// OutputPath is the directory where per-day artifacts are written.
	OutputPath string `mapstructure:"output_path"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// LogFile, when set, receives every log line in append mode alongside the console.
	LogFile string `mapstructure:"log_file"`
	// DownloadPause is the fixed pause between per-day requests (e.g. "100ms").
	DownloadPause string `mapstructure:"download_pause"`
	// RedirectURL is the OAuth2 redirect target registered for this client.
	// Only the `auth login` browser flow needs it.
	RedirectURL string `mapstructure:"redirect_url"`

	// TokenURL is the OAuth2 token endpoint (set automatically).
	TokenURL string
	// APIBaseURL is the AccessLink REST base URL (set automatically).
	APIBaseURL string
	// AuthorizationURL is the OAuth2 consent page URL (set automatically).
	AuthorizationURL string
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedDownloadPause is the parsed pause between per-day requests.
	ParsedDownloadPause time.Duration
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".polar-metrics.yaml"

	// DefaultOutputPath is the default directory for per-day artifacts.
	DefaultOutputPath = "polar-data"

	// DefaultDownloadPause is the default pause between per-day requests.
	DefaultDownloadPause = "100ms"

	// TokenURL is the OAuth2 token endpoint of the Polar remote service.
	TokenURL = "https://polarremote.com/v2/oauth2/token"

	// APIBaseURL is the base URL of the AccessLink REST API.
	APIBaseURL = "https://www.polaraccesslink.com"

	// AuthorizationURL is the OAuth2 consent page where the user grants access.
	AuthorizationURL = "https://flow.polar.com/oauth2_authorization"

	// envPrefix is the prefix of environment variable overrides (POLAR_CLIENT_ID, ...).
	envPrefix = "POLAR"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyClientID indicates that the OAuth2 client identifier is missing.
	ErrEmptyClientID = errors.New("client_id cannot be empty")
	// ErrEmptyClientSecret indicates that the OAuth2 client secret is missing.
	ErrEmptyClientSecret = errors.New("client_secret cannot be empty")
	// ErrEmptyMemberID indicates that the member identifier is missing.
	ErrEmptyMemberID = errors.New("member_id cannot be empty")
	// ErrEmptyOutputPath indicates that the artifact directory is missing.
	ErrEmptyOutputPath = errors.New("output_path cannot be empty")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidDownloadPause indicates that the pause between requests is invalid.
	ErrInvalidDownloadPause = errors.New("download_pause must be positive")
)

// LoadConfig loads configuration settings from a YAML file with POLAR_*
// environment variables overlaid on top. A missing default config file is
// not an error: credentials may arrive entirely through the environment.
func LoadConfig(configFilename string) (*Config, error) {
	explicitFile := configFilename != ""
	if !explicitFile {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)
	viper.SetEnvPrefix(envPrefix)
	bindEnvironment()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if explicitFile || !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func bindEnvironment() {
	// Explicit bindings keep the key set discoverable.
	for _, key := range []string{
		"client_id",
		"client_secret",
		"member_id",
		"authorization_code",
		"output_path",
		"log_level",
		"log_file",
		"download_pause",
		"redirect_url",
	} {
		_ = viper.BindEnv(key)
	}
}

func setDefaults() {
	viper.SetDefault("output_path", DefaultOutputPath)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("download_pause", DefaultDownloadPause)
}

// ValidateConfig checks the configuration for validity and sets derived fields.
// Missing credentials are a configuration error: the caller must abort before
// any network call is attempted.
func ValidateConfig(cfg *Config) error {
	cfg.ClientID = strings.TrimSpace(cfg.ClientID)
	if cfg.ClientID == "" {
		return ErrEmptyClientID
	}

	cfg.ClientSecret = strings.TrimSpace(cfg.ClientSecret)
	if cfg.ClientSecret == "" {
		return ErrEmptyClientSecret
	}

	cfg.MemberID = strings.TrimSpace(cfg.MemberID)
	if cfg.MemberID == "" {
		return ErrEmptyMemberID
	}

	if strings.TrimSpace(cfg.OutputPath) == "" {
		return ErrEmptyOutputPath
	}

	cfg.TokenURL = TokenURL
	cfg.APIBaseURL = APIBaseURL
	cfg.AuthorizationURL = AuthorizationURL

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	parsedPause, err := time.ParseDuration(cfg.DownloadPause)
	if err != nil {
		return fmt.Errorf("failed to parse download pause: %w", err)
	}

	if parsedPause <= 0 {
		return ErrInvalidDownloadPause
	}

	cfg.ParsedDownloadPause = parsedPause

	return nil
}

// SaveConfig saves the configuration to the file while preserving the original format and order.
// Only the authorization_code value is rewritten; everything else stays as the user wrote it.
func SaveConfig(cfg *Config) error {
	configFile := getConfigFilePath()

	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, cfg.AuthorizationCode, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	updateAuthorizationCodeInNode(&node, cfg.AuthorizationCode)

	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getConfigFilePath returns the config file path from viper or the default.
func getConfigFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return DefaultConfigFilename
	}

	return configFile
}

// handleMissingConfigFile creates a new config file if it doesn't exist.
func handleMissingConfigFile(configFile, authorizationCode string, err error) error {
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	viper.Set("authorization_code", authorizationCode)

	if err = viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// updateAuthorizationCodeInNode updates the authorization_code value in the YAML node tree,
// appending the key if the file does not carry it yet.
func updateAuthorizationCodeInNode(node *yaml.Node, authorizationCode string) {
	// The root node is a document node, content[0] is the actual map.
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return
	}

	mapNode := node.Content[0]

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i < len(mapNode.Content); i += 2 {
		keyNode := mapNode.Content[i]
		valueNode := mapNode.Content[i+1]

		if keyNode.Value == "authorization_code" {
			valueNode.Value = authorizationCode

			// Ensure it's quoted if it contains special characters.
			if valueNode.Style == 0 {
				valueNode.Style = yaml.DoubleQuotedStyle
			}

			return
		}
	}

	mapNode.Content = append(mapNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "authorization_code"},
		&yaml.Node{Kind: yaml.ScalarNode, Value: authorizationCode, Style: yaml.DoubleQuotedStyle},
	)
}
