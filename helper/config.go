package helper

import (
	"fmt"
	"os"
	"strings"

	"github.com/siherrmann/dataTable/model"
	"github.com/spf13/viper"
)

const (
	ENV_PREFIX      = "DATATABLE"
	CONFIG_PATH_ENV = ENV_PREFIX + "_CONFIG"
)

// ConfigPath returns the config file path from DATATABLE_CONFIG, empty if unset.
func ConfigPath() string {
	return os.Getenv(CONFIG_PATH_ENV)
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	BucketName      string `mapstructure:"bucket_name"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Prefix          string `mapstructure:"prefix"`
}

type StorageConfig struct {
	Mode string   `mapstructure:"mode"`
	Path string   `mapstructure:"path"`
	S3   S3Config `mapstructure:"s3"`
}

type ActionsConfig struct {
	Details bool `mapstructure:"details"`
	Edit    bool `mapstructure:"edit"`
	Delete  bool `mapstructure:"delete"`
}

// Config is the configuration of the table server.
type Config struct {
	Port           string           `mapstructure:"port"`
	MaxConcurrency int              `mapstructure:"max_concurrency"`
	SeedJSON       string           `mapstructure:"seed_json"`
	TrustedOrigins []string         `mapstructure:"trusted_origins"`
	CsrfKey        string           `mapstructure:"csrf_key"`
	SecureCookie   bool             `mapstructure:"secure_cookie"`
	Storage        StorageConfig    `mapstructure:"storage"`
	Actions        ActionsConfig    `mapstructure:"actions"`
	Style          model.TableStyle `mapstructure:"style"`
}

// LoadConfig reads the optional YAML file at path and overrides it with
// DATATABLE_* environment variables, e.g. DATATABLE_STORAGE_MODE.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("port", "3000")
	v.SetDefault("max_concurrency", 1)
	v.SetDefault("seed_json", "")
	v.SetDefault("trusted_origins", []string{"localhost:3000", "127.0.0.1:3000"})
	v.SetDefault("csrf_key", "")
	v.SetDefault("secure_cookie", false)
	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.path", "./exports")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.bucket_name", "")
	v.SetDefault("storage.s3.access_key_id", "")
	v.SetDefault("storage.s3.secret_access_key", "")
	v.SetDefault("storage.s3.use_ssl", true)
	v.SetDefault("storage.s3.prefix", "")
	v.SetDefault("actions.details", true)
	v.SetDefault("actions.edit", false)
	v.SetDefault("actions.delete", true)
	v.SetDefault("style.container", "")
	v.SetDefault("style.button", "")
	v.SetDefault("style.input", "")
	v.SetDefault("style.checkbox", "")
	v.SetDefault("style.dropdown", "")
	v.SetDefault("style.row", "")

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
