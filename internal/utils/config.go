package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"playground/internal/catalog"
	"playground/internal/view"
)

// Config is the effective service configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`
	Launch  LaunchConfig  `mapstructure:"launch" yaml:"launch"`
	Prefs   PrefsConfig   `mapstructure:"prefs" yaml:"prefs"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Static  StaticConfig  `mapstructure:"static" yaml:"static"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	TLSCert         string        `mapstructure:"tls_cert" yaml:"tls_cert"`
	TLSKey          string        `mapstructure:"tls_key" yaml:"tls_key"`
}

type CatalogConfig struct {
	Manifest        string        `mapstructure:"manifest" yaml:"manifest"`
	Root            string        `mapstructure:"root" yaml:"root"`
	EmbedHostPrefix string        `mapstructure:"embed_host_prefix" yaml:"embed_host_prefix"`
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout" yaml:"fetch_timeout"`
	Watch           bool          `mapstructure:"watch" yaml:"watch"`
	WatchDebounce   time.Duration `mapstructure:"watch_debounce" yaml:"watch_debounce"`
}

type LaunchConfig struct {
	SanitizeEmbed bool `mapstructure:"sanitize_embed" yaml:"sanitize_embed"`
}

type PrefsConfig struct {
	Backend  string `mapstructure:"backend" yaml:"backend"`
	File     string `mapstructure:"file" yaml:"file"`
	RedisURL string `mapstructure:"redis_url" yaml:"redis_url"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

type StaticConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// SetDefaults registers the default of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.tls_cert", "")
	v.SetDefault("server.tls_key", "")
	v.SetDefault("catalog.manifest", catalog.DefaultManifest)
	v.SetDefault("catalog.root", "")
	v.SetDefault("catalog.embed_host_prefix", view.DefaultEmbedHost)
	v.SetDefault("catalog.fetch_timeout", time.Duration(0))
	v.SetDefault("catalog.watch", false)
	v.SetDefault("catalog.watch_debounce", 250*time.Millisecond)
	v.SetDefault("launch.sanitize_embed", false)
	v.SetDefault("prefs.backend", "memory")
	v.SetDefault("prefs.file", "prefs.json")
	v.SetDefault("prefs.redis_url", "redis://localhost:6379/0")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
	v.SetDefault("static.dir", "static")
}

// NewViper returns a viper instance with defaults, PLAYGROUND_* env
// overrides and, if file is non-empty, the given config file.
func NewViper(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("playground")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return v, nil
}

// LoadConfig decodes the effective configuration.
func LoadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Catalog.Root == "" {
		cfg.Catalog.Root = GetProjectRoot()
	}
	if cfg.Static.Dir != "" && !filepath.IsAbs(cfg.Static.Dir) {
		cfg.Static.Dir = filepath.Join(cfg.Catalog.Root, cfg.Static.Dir)
	}
	return cfg, nil
}

// GetProjectRoot returns the closest ancestor of the working directory that
// holds a go.mod, or "." when there is none.
func GetProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
