package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ekrafft/url-check/internal/models"
)

const (
	DefaultConfigFile = "url-check.yml"
	DefaultResultsDir = "results"
	DefaultListFile   = "urls.txt"

	DefaultOutputName = "url-check-results.csv"
	DefaultLogName    = "url-check.log"

	DefaultMethod         = "GET"
	DefaultTimeoutSeconds = 30
)

// Settings is everything the sweep consumes, resolved from defaults, the
// optional YAML settings file, and command flags (in that order).
type Settings struct {
	ListFile         string `mapstructure:"list_file" json:"list_file"`
	ResultsDir       string `mapstructure:"results_dir" json:"results_dir"`
	OutputFile       string `mapstructure:"output_file" json:"output_file"`
	LogFile          string `mapstructure:"log_file" json:"log_file"`
	Method           string `mapstructure:"method" json:"method"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds" json:"timeout_seconds"`
	IgnoreCertErrors bool   `mapstructure:"ignore_cert_errors" json:"ignore_cert_errors"`
}

type AppConfig struct {
	ConfigFile string
	Settings   Settings
}

var Config AppConfig

func setDefaults(v *viper.Viper) {
	v.SetDefault("list_file", DefaultListFile)
	v.SetDefault("results_dir", DefaultResultsDir)
	v.SetDefault("output_file", "")
	v.SetDefault("log_file", "")
	v.SetDefault("method", DefaultMethod)
	v.SetDefault("timeout_seconds", DefaultTimeoutSeconds)
	v.SetDefault("ignore_cert_errors", false)
}

// Load reads the settings file at path. A missing file is not an error —
// defaults apply and flags can still override everything.
func Load(path string) (Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return Settings{}, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	return s, nil
}

// Resolve fills in derived paths and normalizes the method, then validates.
func (s Settings) Resolve() (Settings, error) {
	if s.ResultsDir == "" {
		s.ResultsDir = DefaultResultsDir
	}
	if s.OutputFile == "" {
		s.OutputFile = filepath.Join(s.ResultsDir, DefaultOutputName)
	}
	if s.LogFile == "" {
		s.LogFile = filepath.Join(s.ResultsDir, DefaultLogName)
	}

	s.Method = strings.ToUpper(strings.TrimSpace(s.Method))
	if !models.ValidMethod(s.Method) {
		return s, fmt.Errorf("unsupported HTTP method %q (want GET, HEAD or POST)", s.Method)
	}

	if s.TimeoutSeconds <= 0 {
		return s, fmt.Errorf("timeout must be a positive number of seconds, got %d", s.TimeoutSeconds)
	}

	return s, nil
}

// EnsureResultsDir creates the results directory when it does not exist.
func (s Settings) EnsureResultsDir() error {
	if err := os.MkdirAll(s.ResultsDir, 0755); err != nil {
		return fmt.Errorf("failed to create results directory %s: %w", s.ResultsDir, err)
	}
	return nil
}
