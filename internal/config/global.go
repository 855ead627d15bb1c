package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
	sigyaml "sigs.k8s.io/yaml"

	"github.com/mozc-build/update-deps/internal/config/validate"
	"github.com/mozc-build/update-deps/internal/utils/logger"
	"github.com/mozc-build/update-deps/internal/utils/security"
)

// GlobalConfig holds tool-level configuration parameters.
type GlobalConfig struct {
	CacheDir      string `yaml:"cache_dir" json:"cache_dir"`             // directory holding downloaded, verified archives (default: ./third_party_cache)
	ThirdPartyDir string `yaml:"third_party_dir" json:"third_party_dir"` // directory the ninja tool is extracted into (default: ./third_party)
	KeepPartial   bool   `yaml:"keep_partial" json:"keep_partial"`       // leave a corrupt partial download on disk for inspection (default: true)

	Logging LoggingConfig `yaml:"logging" json:"logging"` // logging behavior settings
}

// LoggingConfig controls basic logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`                   // log verbosity: debug, info (default), warn, error
	File  string `yaml:"file,omitempty" json:"file,omitempty"` // optional log file path for teeing output to disk
}

var (
	globalInstance *GlobalConfig
	globalMutex    sync.RWMutex
	once           sync.Once
)

// SetGlobal sets the global config instance (call once at startup in main).
func SetGlobal(config *GlobalConfig) {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	globalInstance = config
}

// Global returns the global config instance.
func Global() *GlobalConfig {
	once.Do(func() {
		globalMutex.Lock()
		defer globalMutex.Unlock()
		if globalInstance == nil {
			globalInstance = DefaultGlobalConfig()
		}
	})

	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return globalInstance
}

// DefaultGlobalConfig returns a GlobalConfig with the legacy build layout
// defaults.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		CacheDir:      "./third_party_cache",
		ThirdPartyDir: "./third_party",
		KeepPartial:   true,

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadGlobalConfig loads configuration from the specified path, merged over
// defaults. A missing file yields the defaults.
func LoadGlobalConfig(configPath string) (*GlobalConfig, error) {
	log := logger.Logger()
	config := DefaultGlobalConfig()

	if configPath == "" {
		return config, nil
	}

	data, err := security.SafeReadFile(configPath, security.RejectSymlinks)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		log.Errorf("Error reading config file %s: %v", configPath, err)
		return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
	}

	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		// Validate against the schema before merging so typos in keys are
		// rejected instead of silently ignored.
		jsonData, err := sigyaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("converting config to JSON for validation: %w", err)
		}
		if err := validate.ValidateConfigJSON(jsonData); err != nil {
			return nil, fmt.Errorf("schema validation failed: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml)", ext)
	}

	if err := security.ValidateStructStrings(config, security.DefaultLimits()); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks the configuration values for consistency.
func (c *GlobalConfig) Validate() error {
	if strings.TrimSpace(c.CacheDir) == "" {
		return fmt.Errorf("cache_dir must not be empty")
	}
	if strings.TrimSpace(c.ThirdPartyDir) == "" {
		return fmt.Errorf("third_party_dir must not be empty")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown logging level: %s", c.Logging.Level)
	}
	return nil
}

// GetConfigPaths lists the locations searched for a configuration file, in
// priority order.
func GetConfigPaths() []string {
	return []string{
		"./update-deps.yml",
		"./update-deps.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "update-deps", "config.yml"),
	}
}

// FindConfigFile searches for a configuration file in standard locations.
func FindConfigFile() string {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Convenience accessors usable anywhere in the codebase.

func CacheDir() (string, error) {
	cacheDir, err := filepath.Abs(Global().CacheDir)
	if err != nil {
		return "", fmt.Errorf("resolving cache directory: %w", err)
	}
	return cacheDir, nil
}

func ThirdPartyDir() (string, error) {
	thirdPartyDir, err := filepath.Abs(Global().ThirdPartyDir)
	if err != nil {
		return "", fmt.Errorf("resolving third-party directory: %w", err)
	}
	return thirdPartyDir, nil
}

func KeepPartial() bool {
	return Global().KeepPartial
}
