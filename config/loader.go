package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/middlewarekit/logger"
)

// maxEnvKeyParts bounds the number of dot/underscore variants generated per variable.
const maxEnvKeyParts = 8

// FileSystem abstracts file operations for the loader.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using the OS.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Defaulter is implemented by config structs that fill zero values.
type Defaulter interface {
	ApplyDefaults()
}

// Validator is implemented by config structs that check themselves.
type Validator interface {
	Validate() error
}

// LoaderConfig holds loader dependencies and overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
	EnvPrefix  string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix overrides the environment variable prefix derived from the service name.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

// LoadConfig loads configuration for a service into cfg.
// If cfg implements Defaulter and Validator they run after unmarshalling.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	lc := LoaderConfig{EnvPrefix: EnvPrefix(serviceName)}
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = RealFileSystem{}
	}

	log := logger.WithComponent("config")
	v := viper.New()

	configFile := lc.ConfigFile
	if configFile == "" {
		configFile = findFile(lc.FileSystem, configSearchPaths(serviceName))
	}
	if configFile != "" && lc.FileSystem.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", configFile, err)
		}
		log.Debug("config file loaded", logger.Fields("file", configFile))
	}

	envFile := lc.EnvFile
	if envFile == "" {
		envFile = findFile(lc.FileSystem, envSearchPaths(serviceName))
	}
	if envFile != "" && lc.FileSystem.Exists(envFile) {
		if err := lc.FileSystem.LoadEnv(envFile); err != nil {
			log.Warn("failed to load env file", logger.Fields("file", envFile, logger.FieldError, err.Error()))
		}
	}

	bindEnvVars(v, lc.EnvPrefix, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal for service %s: %w", serviceName, err)
	}

	if d, ok := cfg.(Defaulter); ok {
		d.ApplyDefaults()
	}
	if val, ok := cfg.(Validator); ok {
		if err := val.Validate(); err != nil {
			return fmt.Errorf("config: invalid configuration for service %s: %w", serviceName, err)
		}
	}
	return nil
}

// EnvPrefix derives the environment variable prefix for a service name.
func EnvPrefix(serviceName string) string {
	if serviceName == "" {
		return ""
	}
	return strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_")) + "_"
}

func findFile(fs FileSystem, candidates []string) string {
	for _, path := range candidates {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

func configSearchPaths(serviceName string) []string {
	return []string{
		filepath.Join("cmd", serviceName, "config.yml"),
		filepath.Join("config", serviceName+".yml"),
		filepath.Join("config", "config.yml"),
		"config.yml",
	}
}

func envSearchPaths(serviceName string) []string {
	return []string{
		filepath.Join("cmd", serviceName, ".env"),
		".env." + serviceName,
		".env",
	}
}

// bindEnvVars sets every prefixed variable under all of its key variants.
func bindEnvVars(v *viper.Viper, prefix string, environ []string) {
	for _, env := range environ {
		key, value, ok := strings.Cut(env, "=")
		if !ok || prefix == "" || !strings.HasPrefix(key, prefix) {
			continue
		}
		for _, variant := range envKeyVariants(strings.TrimPrefix(key, prefix)) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants expands CLIENT_BASE_URL into every dot/underscore split:
// client_base_url, client.base_url, client_base.url, client.base.url.
func envKeyVariants(envKey string) []string {
	parts := strings.Split(strings.ToLower(envKey), "_")
	if len(parts) == 1 {
		return parts
	}
	if len(parts) > maxEnvKeyParts {
		return []string{strings.Join(parts, "_"), strings.Join(parts, ".")}
	}

	gaps := len(parts) - 1
	variants := make([]string, 0, 1<<gaps)
	for mask := 0; mask < 1<<gaps; mask++ {
		var b strings.Builder
		b.WriteString(parts[0])
		for i := 1; i < len(parts); i++ {
			if mask&(1<<(i-1)) != 0 {
				b.WriteByte('.')
			} else {
				b.WriteByte('_')
			}
			b.WriteString(parts[i])
		}
		variants = append(variants, b.String())
	}
	return variants
}
