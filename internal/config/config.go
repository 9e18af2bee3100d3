package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour/styles"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const appName = "chostmd"

// MaxWorkers bounds export.workers.
const MaxWorkers = 256

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < .env < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// SetConfigFile upstream takes precedence over the search paths.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// .env never overrides variables already set in the environment.
	_ = godotenv.Load()

	// Environment variables: CHOSTMD_*
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return nil
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, appName, "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "out_dir", Default: "", Comment: "Output directory used when posts/likes get no OUTDIR argument"},

		{Key: "log.level", Default: "info", Comment: "Log level: debug, info, warn, error"},
		{Key: "render.timezone", Default: "Local", Comment: "IANA timezone for displayed times, or Local"},
		{Key: "export.workers", Default: 4, Comment: "Posts rendered and written in parallel (1-256)"},
		{Key: "export.overwrite", Default: false, Comment: "Rewrite files even when the manifest says they are unchanged"},
		{Key: "manifest.enabled", Default: true, Comment: "Track exported posts and their content hash"},
		{Key: "manifest.path", Default: "", Comment: "Manifest database; empty means OUTDIR/.chostmd/manifest.db, mem: keeps it in memory"},
		{Key: "preview.style", Default: "dracula", Comment: "Glamour style for preview --output pretty"},
		{Key: "preview.word_wrap", Default: 0, Comment: "Word wrap for pretty preview; 0 uses the terminal width"},
	}
}

// ResolveManifestPath returns the manifest DSN for an export into outDir.
// An empty string means no manifest.
func ResolveManifestPath(v *viper.Viper, outDir string) string {
	if !v.GetBool("manifest.enabled") {
		return ""
	}
	p := strings.TrimSpace(v.GetString("manifest.path"))
	if p == "" {
		return filepath.Join(outDir, "."+appName, "manifest.db")
	}
	// Expand ~ for convenience
	if p[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

// Location resolves render.timezone.
func Location(v *viper.Viper) (*time.Location, error) {
	name := strings.TrimSpace(v.GetString("render.timezone"))
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// CheckConfigValidity reports every invalid option at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	if _, err := zapcore.ParseLevel(v.GetString("log.level")); err != nil {
		errs = append(errs, fmt.Errorf("log.level %q is not a log level", v.GetString("log.level")))
	}
	if _, err := Location(v); err != nil {
		errs = append(errs, fmt.Errorf("render.timezone %q is not a known timezone", v.GetString("render.timezone")))
	}
	if n := v.GetInt("export.workers"); n < 1 || n > MaxWorkers {
		errs = append(errs, fmt.Errorf("export.workers must be between 1 and %d", MaxWorkers))
	}
	if v.GetInt("preview.word_wrap") < 0 {
		errs = append(errs, errors.New("preview.word_wrap must not be negative"))
	}
	if style := v.GetString("preview.style"); style != styles.AutoStyle {
		if _, ok := styles.DefaultStyles[style]; !ok {
			errs = append(errs, fmt.Errorf("preview.style %q is not a glamour style", style))
		}
	}
	return errors.Join(errs...)
}
