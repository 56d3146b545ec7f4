package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/paths"
)

// EnvPrefix prefixes environment overrides, e.g. FOLIO_POSTS_DIR.
const EnvPrefix = "FOLIO"

// Malformed-document policies accepted by on_malformed.
const (
	OnMalformedSkip = "skip"
	OnMalformedFail = "fail"
)

// Default values.
const (
	DefaultPostsDir  = "app/blog/posts"
	DefaultExtension = ".mdx"
	DefaultAddr      = "127.0.0.1:3000"
)

// DefaultRenderExtensions are the goldmark extensions enabled when the
// config does not name any. Together they make up GitHub Flavored Markdown.
var DefaultRenderExtensions = []string{"table", "strikethrough", "linkify", "tasklist"}

// Config represents the top-level configuration structure.
type Config struct {
	Version     int          `mapstructure:"version" yaml:"version"`
	PostsDir    string       `mapstructure:"posts_dir" yaml:"posts_dir"`
	Extension   string       `mapstructure:"extension" yaml:"extension"`
	OnMalformed string       `mapstructure:"on_malformed" yaml:"on_malformed"`
	Render      RenderConfig `mapstructure:"render" yaml:"render"`
	Server      ServerConfig `mapstructure:"server" yaml:"server"`
}

// RenderConfig controls Markdown rendering.
type RenderConfig struct {
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
	Sanitize   bool     `mapstructure:"sanitize" yaml:"sanitize"`
	HardWraps  bool     `mapstructure:"hard_wraps" yaml:"hard_wraps"`
}

// ServerConfig controls the preview server.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Init resets Viper and registers search paths, environment handling and
// defaults. Call it once at startup before Load.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths, in order of precedence
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("posts_dir", DefaultPostsDir)
	viper.SetDefault("extension", DefaultExtension)
	viper.SetDefault("on_malformed", OnMalformedSkip)
	viper.SetDefault("render.extensions", DefaultRenderExtensions)
	viper.SetDefault("render.sanitize", true)
	viper.SetDefault("render.hard_wraps", false)
	viper.SetDefault("server.addr", DefaultAddr)
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Version:     1,
		PostsDir:    DefaultPostsDir,
		Extension:   DefaultExtension,
		OnMalformed: OnMalformedSkip,
		Render: RenderConfig{
			Extensions: append([]string(nil), DefaultRenderExtensions...),
			Sanitize:   true,
		},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Load reads the configuration file and validates the result.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, the default locations are searched and
// defaults are used when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load falls back to defaults
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			// SetConfigFile reports a missing file as an fs error
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, &ValidationError{Errs: errs}
	}

	return &cfg, nil
}

// FileUsed returns the config file Load read, or "" when defaults were used.
func FileUsed() string {
	return viper.ConfigFileUsed()
}
