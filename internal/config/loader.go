// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `<root>/conf/.env` — dotenv values.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `PORTFOLIO_`, where `__` maps to “.”
     (e.g., `PORTFOLIO_HTTP__LISTEN_ADDR → http.listen_addr`).

After merging, the tree is unmarshalled into strongly-typed structs,
enriched with defaults and the runtime root path, any `vault:` secret
references are resolved, the result is validated, and finally cached in an
`atomic.Pointer` for lock-free reads.

Instrumentation
---------------
  • DEBUG spans — root discovery, YAML read, env overlay.
  • ERROR spans — YAML parse, env overlay, unmarshal, validation failures.
  • INFO  span  — final “config loaded” with key highlights.
  • Logs use the global *sugared* logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed (bootstrap console).

Notes
-----
  • `rootDir()` climbs the cwd tree until it finds `conf/global.yaml`;
    this lets `go run ./cmd/web` work from any sub-directory.
  • Secrets only touch Vault when at least one field carries the `vault:`
    prefix, so development setups run without a Vault server.
*/
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/abasuthakur/portfolio-api/internal/vault"
)

var current atomic.Pointer[Config]

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves PORTFOLIO_ROOT or climbs directories until
// conf/global.yaml is found.  Falls back to executable heuristic for
// production layout.
func rootDir() string {
	if r := os.Getenv("PORTFOLIO_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, env overrides, resolves secrets, validates, and
// caches Config.
func Load(ctx context.Context) (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	// Env overrides: PORTFOLIO_HTTP__LISTEN_ADDR → http.listen_addr
	if err := k.Load(env.Provider("PORTFOLIO_", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, "PORTFOLIO_"), "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	applyDefaults(&cfg)

	if err := resolveSecrets(ctx, &cfg); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"mail_production", cfg.Mail.Production,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

/*──────────────────────────── defaults ────────────────────────────────────*/

// applyDefaults fills zero-valued tunables with the same defaults the
// production service assumed.
func applyDefaults(c *Config) {
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = ":8000"
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.User == "" {
		c.Database.User = "root"
	}
	if c.Database.Name == "" {
		c.Database.Name = "portfolio"
	}
	if c.Database.MaxOpen == 0 {
		c.Database.MaxOpen = 10
	}
	if c.Database.MaxIdle == 0 {
		c.Database.MaxIdle = 5
	}
	if c.Database.MaxAttempts == 0 {
		c.Database.MaxAttempts = 5
	}
	if c.Database.BaseDelay == 0 {
		c.Database.BaseDelay = time.Second
	}
	if c.Database.MaxDelay == 0 {
		c.Database.MaxDelay = 30 * time.Second
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Mail.Host == "" {
		c.Mail.Host = "smtp.gmail.com"
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}
	if c.Mail.FromName == "" {
		c.Mail.FromName = "Portfolio Contact"
	}
	if c.Mail.OwnerName == "" {
		c.Mail.OwnerName = "Portfolio Owner"
	}
	if c.Mail.QueueSize == 0 {
		c.Mail.QueueSize = 64
	}
}

/*──────────────────────────── secret resolution ───────────────────────────*/

// resolveSecrets replaces `vault:` references in secret-bearing fields.
// The Vault client is only constructed when at least one reference exists.
func resolveSecrets(ctx context.Context, c *Config) error {
	fields := []*string{
		&c.Auth.JWTSecret,
		&c.Database.Password,
		&c.Mail.Password,
		&c.Mail.OAuthClientSecret,
		&c.Mail.OAuthRefreshToken,
	}

	any := false
	for _, f := range fields {
		if vault.IsRef(*f) {
			any = true
			break
		}
	}
	if !any {
		return nil
	}

	cli, err := vault.New(ctx, zap.S().Infof)
	if err != nil {
		return err
	}
	for _, f := range fields {
		val, err := cli.Resolve(ctx, *f)
		if err != nil {
			return err
		}
		*f = val
	}
	return nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config { return current.Load() }
