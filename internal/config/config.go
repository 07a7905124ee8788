package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/dsh2dsh/imgtag"
)

const (
	configFolderName  = "imgtag"
	configFileName    = "config.toml"
	configPathEnvName = "XDG_CONFIG_HOME"
)

type Config struct {
	Protocols         []string
	Domains           []string
	SanitizeDomain    bool
	SanitizeSrc       bool
	RequireExtensions []string
	ForbidExtensions  []string
	MaxDimension      int
}

// Default returns config of the default policy: http and https only, no
// domains allowed and src must point to an image file.
func Default() Config {
	return Config{
		Protocols:         []string{"http", "https"},
		SanitizeDomain:    true,
		SanitizeSrc:       true,
		RequireExtensions: imgtag.ImageExtensions(),
	}
}

// LoadConfig loads config from path. Empty path means the first existing of
// $XDG_CONFIG_HOME/imgtag/config.toml and ~/.config/imgtag/config.toml, and
// no config file at all is fine. Env overrides are applied last.
func LoadConfig(path string) (Config, error) {
	cfg := Default()

	hasConfig := path != ""
	if !hasConfig {
		p, ok, err := findConfigPath()
		if err != nil {
			return Config{}, err
		}
		path, hasConfig = p, ok
	}

	if hasConfig {
		fileCfg, err := loadFileConfig(path)
		if err != nil {
			return Config{}, err
		}
		applyFileConfig(&cfg, fileCfg)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Policy builds an image policy from the config.
func (c Config) Policy(logger zerolog.Logger) *imgtag.Policy {
	p := imgtag.NewPolicy().
		AllowURLSchemes(c.Protocols...).
		AllowDomains(c.Domains...).
		RequireExtensions(c.RequireExtensions...).
		ForbidExtensions(c.ForbidExtensions...).
		SanitizeSrc(c.SanitizeSrc).
		ClampDimensions(c.MaxDimension).
		WithLogger(logger)

	if !c.SanitizeDomain {
		p.AllowAllDomains()
	}
	return p
}

type fileConfig struct {
	Protocols         *[]string `toml:"protocols"`
	Domains           *[]string `toml:"domains"`
	SanitizeDomain    *bool     `toml:"sanitize_domain"`
	SanitizeSrc       *bool     `toml:"sanitize_src"`
	RequireExtensions *[]string `toml:"require_extensions"`
	ForbidExtensions  *[]string `toml:"forbid_extensions"`
	MaxDimension      *int      `toml:"max_dimension"`
}

func findConfigPath() (string, bool, error) {
	candidates := make([]string, 0, 2)
	if xdgConfigHome := strings.TrimSpace(os.Getenv(configPathEnvName)); xdgConfigHome != "" {
		candidates = append(candidates, filepath.Join(xdgConfigHome, configFolderName, configFileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", configFolderName, configFileName))
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", false, fmt.Errorf("config path %q is a directory; expected a file", candidate)
			}
			return candidate, true, nil
		}
		if os.IsNotExist(err) {
			continue
		}
		return "", false, fmt.Errorf("failed to read config path %q: %w", candidate, err)
	}
	return "", false, nil
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		unknown := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			unknown = append(unknown, key.String())
		}
		sort.Strings(unknown)
		return fileConfig{}, fmt.Errorf("invalid config file %q: unknown key(s): %s", path, strings.Join(unknown, ", "))
	}
	if err := validateFileConfig(path, cfg); err != nil {
		return fileConfig{}, err
	}
	return cfg, nil
}

func validateFileConfig(path string, cfg fileConfig) error {
	if cfg.Protocols != nil {
		for _, s := range *cfg.Protocols {
			if strings.TrimSpace(s) == "" || strings.Contains(s, ":") {
				return fmt.Errorf("invalid config file %q: protocols must be scheme names, got %q", path, s)
			}
		}
	}
	if cfg.Domains != nil {
		for _, s := range *cfg.Domains {
			if strings.TrimSpace(s) == "" || strings.Contains(s, "/") {
				return fmt.Errorf("invalid config file %q: domains must be host names, got %q", path, s)
			}
		}
	}
	for key, exts := range map[string]*[]string{
		"require_extensions": cfg.RequireExtensions,
		"forbid_extensions":  cfg.ForbidExtensions,
	} {
		if exts == nil {
			continue
		}
		for _, s := range *exts {
			if !strings.HasPrefix(strings.TrimSpace(s), ".") {
				return fmt.Errorf("invalid config file %q: %s must start with a dot, got %q", path, key, s)
			}
		}
	}
	if cfg.MaxDimension != nil && *cfg.MaxDimension < 0 {
		return fmt.Errorf("invalid config file %q: max_dimension must be >= 0", path)
	}
	return nil
}

func applyFileConfig(cfg *Config, fileCfg fileConfig) {
	if fileCfg.Protocols != nil {
		cfg.Protocols = *fileCfg.Protocols
	}
	if fileCfg.Domains != nil {
		cfg.Domains = *fileCfg.Domains
	}
	if fileCfg.SanitizeDomain != nil {
		cfg.SanitizeDomain = *fileCfg.SanitizeDomain
	}
	if fileCfg.SanitizeSrc != nil {
		cfg.SanitizeSrc = *fileCfg.SanitizeSrc
	}
	if fileCfg.RequireExtensions != nil {
		cfg.RequireExtensions = *fileCfg.RequireExtensions
	}
	if fileCfg.ForbidExtensions != nil {
		cfg.ForbidExtensions = *fileCfg.ForbidExtensions
	}
	if fileCfg.MaxDimension != nil {
		cfg.MaxDimension = *fileCfg.MaxDimension
	}
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("IMGTAG_PROTOCOLS"); ok && v != "" {
		cfg.Protocols = splitList(v)
	}
	if v, ok := os.LookupEnv("IMGTAG_DOMAINS"); ok && v != "" {
		cfg.Domains = splitList(v)
	}
	if v, ok := os.LookupEnv("IMGTAG_SANITIZE_DOMAIN"); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SanitizeDomain = b
		}
	}
	if v, ok := os.LookupEnv("IMGTAG_SANITIZE_SRC"); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SanitizeSrc = b
		}
	}
}

func splitList(s string) []string {
	fields := strings.Split(s, ",")
	list := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			list = append(list, f)
		}
	}
	return list
}
