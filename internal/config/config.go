package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Widget  WidgetConfig  `mapstructure:"widget"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Theme   ThemeConfig   `mapstructure:"theme"`
}

type WidgetConfig struct {
	CaptionPlaceholder  string `mapstructure:"caption_placeholder"`
	AltPlaceholder      string `mapstructure:"alt_placeholder"`
	UploadButtonContent string `mapstructure:"upload_button_content"`
	EmbedButtonContent  string `mapstructure:"embed_button_content"`
}

type CatalogConfig struct {
	APIURL           string        `mapstructure:"api_url"`
	ClientID         string        `mapstructure:"client_id"`
	MaxResults       int           `mapstructure:"max_results"`
	AppName          string        `mapstructure:"app_name"`
	ButtonContent    string        `mapstructure:"button_content"`
	InputPlaceholder string        `mapstructure:"input_placeholder"`
	Debounce         time.Duration `mapstructure:"debounce"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	Path string        `mapstructure:"path"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type StorageConfig struct {
	Kind string        `mapstructure:"kind"`
	Dir  string        `mapstructure:"dir"`
	S3   S3StoreConfig `mapstructure:"s3"`
}

type S3StoreConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	PublicURL string `mapstructure:"public_url"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type ThemeConfig struct {
	Base string `mapstructure:"base"`
	Dir  string `mapstructure:"dir"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("imagetool")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "imagetool"))
		}
	}

	v.SetEnvPrefix("IMAGETOOL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("widget.caption_placeholder", "Caption")
	v.SetDefault("widget.alt_placeholder", "Alt text")
	v.SetDefault("widget.upload_button_content", "Select an Image")
	v.SetDefault("widget.embed_button_content", "Embed URL")
	v.SetDefault("catalog.api_url", "https://api.unsplash.com")
	v.SetDefault("catalog.client_id", "")
	v.SetDefault("catalog.max_results", 40)
	v.SetDefault("catalog.app_name", "")
	v.SetDefault("catalog.button_content", "Unsplash")
	v.SetDefault("catalog.input_placeholder", "Search keyword on Unsplash")
	v.SetDefault("catalog.debounce", time.Second)
	v.SetDefault("catalog.timeout", 10*time.Second)
	v.SetDefault("cache.path", "")
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("storage.kind", "local")
	v.SetDefault("storage.dir", "./media")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.use_ssl", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", filepath.Join(os.TempDir(), "imagetool.log"))
	v.SetDefault("theme.base", "dark")
	v.SetDefault("theme.dir", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Credentials also come from their conventional names
	v.BindEnv("catalog.client_id", "IMAGETOOL_CATALOG_CLIENT_ID", "UNSPLASH_ACCESS_KEY")
	v.BindEnv("storage.s3.access_key", "IMAGETOOL_STORAGE_S3_ACCESS_KEY", "AWS_ACCESS_KEY_ID")
	v.BindEnv("storage.s3.secret_key", "IMAGETOOL_STORAGE_S3_SECRET_KEY", "AWS_SECRET_ACCESS_KEY")
	v.BindEnv("storage.s3.region", "IMAGETOOL_STORAGE_S3_REGION", "AWS_REGION")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
