// internal/config/model.go
//
// Typed configuration model for the portfolio API.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   - optional `conf/.env`                        – dotenv values,
//   - `conf/global.yaml`                          – primary static file,
//   - `PORTFOLIO_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *after* unmarshalling, so the rest of the app
// only ever sees plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   - Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   - The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.  AllowedOrigins is the CORS allow-list
// for the browser frontend; requests with no Origin header always pass.
type HTTP struct {
	ListenAddr     string   `koanf:"listen_addr" validate:"required,hostname_port"`
	AllowedOrigins []string `koanf:"allowed_origins"`
	ForceHTTPS     bool     `koanf:"force_https"`
}

//
// Database section
//

// Database describes how to reach MySQL.  When URL is set it wins over the
// discrete fields; otherwise host/port/user/password/name are assembled
// into a DSN with production defaults.  The retry block bounds the startup
// connect loop: BaseDelay doubles per attempt up to MaxDelay, and after
// MaxAttempts failures the process exits non-zero.
type Database struct {
	URL      string `koanf:"url"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`

	MaxOpen int `koanf:"max_open"`
	MaxIdle int `koanf:"max_idle"`

	MaxAttempts int           `koanf:"max_attempts"`
	BaseDelay   time.Duration `koanf:"base_delay"`
	MaxDelay    time.Duration `koanf:"max_delay"`
}

//
// Auth section
//

// Auth configures admin bearer tokens.  JWTSecret may be a `vault:` ref.
type Auth struct {
	JWTSecret string        `koanf:"jwt_secret" validate:"required"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

//
// Admin section
//

// Admin holds the bootstrap credentials used to seed the first admin user
// during migration.  All three must be set for the seed to run.
type Admin struct {
	Username string `koanf:"username"`
	Email    string `koanf:"email"`
	Password string `koanf:"password"`
}

//
// Mail section
//

// Mail selects and configures the outbound email transport.
//
// Production == true together with the full OAuth triple selects the Gmail
// API path.  Otherwise SMTP is used: XOAUTH2 when the OAuth triple plus
// Username are present, plain auth when Username and Password are, and a
// logging no-op when neither credential set exists.
type Mail struct {
	Production bool `koanf:"production"`

	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`

	OAuthClientID     string `koanf:"oauth_client_id"`
	OAuthClientSecret string `koanf:"oauth_client_secret"`
	OAuthRefreshToken string `koanf:"oauth_refresh_token"`

	FromName       string `koanf:"from_name"`
	OwnerName      string `koanf:"owner_name"`
	NotificationTo string `koanf:"notification_to"`
	QueueSize      int    `koanf:"queue_size"`
}

// NotificationRecipient returns the owner-notification address, falling
// back to the sending account itself when none is configured.
func (m Mail) NotificationRecipient() string {
	if m.NotificationTo != "" {
		return m.NotificationTo
	}
	return m.Username
}

// SenderAddress returns the account mail is sent from.  The Gmail API
// path authenticates with the OAuth triple alone, so when no SMTP
// username is configured the notification address doubles as the sender.
func (m Mail) SenderAddress() string {
	if m.Username != "" {
		return m.Username
	}
	return m.NotificationTo
}

// HasOAuth reports whether the full OAuth2 credential triple is present.
func (m Mail) HasOAuth() bool {
	return m.OAuthClientID != "" && m.OAuthClientSecret != "" && m.OAuthRefreshToken != ""
}

//
// Geo section
//

// Geo points at an optional GeoLite2-City database used to annotate
// contact submissions with a coarse origin.  Empty path disables lookups.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or PORTFOLIO_ROOT override) so later code
// can build absolute file paths.
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Auth     Auth     `koanf:"auth"`
	Admin    Admin    `koanf:"admin"`
	Mail     Mail     `koanf:"mail"`
	Geo      Geo      `koanf:"geo"`
	Paths    Paths    `koanf:"-"`
}
