// ABOUTME: Configuration loader for the careervista client
// ABOUTME: Layers defaults, config.yaml, .env, CAREERVISTA_* env and flags via koanf

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/careervista/careervista-cli/internal/storage"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "CAREERVISTA_"

// FileName is the optional YAML file inside the config dir.
const FileName = "config.yaml"

// Keys.
const (
	KeyAPIURL       = "api_url"
	KeyUploadURL    = "upload_url"
	KeyCloudName    = "cloud_name"
	KeyUploadPreset = "upload_preset"
	KeyConfigDir    = "config_dir"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
)

var keys = []string{
	KeyAPIURL, KeyUploadURL, KeyCloudName, KeyUploadPreset,
	KeyConfigDir, KeyLogLevel, KeyLogFormat,
}

type Config struct {
	APIURL       string `koanf:"api_url" yaml:"api_url" json:"api_url"`
	UploadURL    string `koanf:"upload_url" yaml:"upload_url" json:"upload_url"`
	CloudName    string `koanf:"cloud_name" yaml:"cloud_name" json:"cloud_name"`
	UploadPreset string `koanf:"upload_preset" yaml:"upload_preset" json:"upload_preset"`
	ConfigDir    string `koanf:"config_dir" yaml:"config_dir" json:"config_dir"`
	LogLevel     string `koanf:"log_level" yaml:"log_level" json:"log_level"`
	LogFormat    string `koanf:"log_format" yaml:"log_format" json:"log_format"`
}

// Defaults returns the built-in configuration.
func Defaults() map[string]string {
	return map[string]string{
		KeyAPIURL:       "http://localhost:8080",
		KeyUploadURL:    "https://api.cloudinary.com/v1_1",
		KeyCloudName:    "",
		KeyUploadPreset: "PDF_Resume",
		KeyConfigDir:    storage.DefaultConfigDir(),
		KeyLogLevel:     "info",
		KeyLogFormat:    "text",
	}
}

// FlagKey maps a flag name onto its config key ("api-url" -> "api_url").
func FlagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// Load builds the effective configuration. flags may be nil. Only flags
// whose names map onto a known key take part, and an unset flag never
// overrides a lower layer.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, oops.Code("CONFIG_DOTENV").Wrapf(err, "loading .env")
	}

	k := koanf.New(".")
	for key, val := range Defaults() {
		if err := k.Set(key, val); err != nil {
			return nil, oops.Code("CONFIG_DEFAULTS").Wrapf(err, "setting default %s", key)
		}
	}

	dir := resolveConfigDir(flags, k.String(KeyConfigDir))
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE").With("path", path).Wrapf(err, "reading %s", path)
		}
	}
	// The dir the file was found in wins over any config_dir inside it.
	if err := k.Set(KeyConfigDir, dir); err != nil {
		return nil, oops.Code("CONFIG_DEFAULTS").Wrapf(err, "setting config dir")
	}

	for _, key := range keys {
		if v := getEnv(key); v != "" {
			if err := k.Set(key, v); err != nil {
				return nil, oops.Code("CONFIG_ENV").Wrapf(err, "applying %s%s", EnvPrefix, strings.ToUpper(key))
			}
		}
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key := FlagKey(f.Name)
			if !knownKey(key) {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS").Wrapf(err, "reading flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_DECODE").Wrapf(err, "decoding config")
	}
	cfg.APIURL = strings.TrimRight(ensureScheme(cfg.APIURL), "/")
	cfg.UploadURL = strings.TrimRight(ensureScheme(cfg.UploadURL), "/")
	return &cfg, nil
}

// resolveConfigDir picks the directory before config.yaml is read:
// --config-dir, then CAREERVISTA_CONFIG_DIR, then the XDG default.
func resolveConfigDir(flags *pflag.FlagSet, fallback string) string {
	if flags != nil {
		if f := flags.Lookup("config-dir"); f != nil && f.Changed && f.Value.String() != "" {
			return f.Value.String()
		}
	}
	if v := getEnv(KeyConfigDir); v != "" {
		return v
	}
	return fallback
}

func knownKey(key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func getEnv(key string) string {
	return os.Getenv(EnvPrefix + strings.ToUpper(key))
}

// ensureScheme adds http:// when the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}
