package main

import (
	"os"
	"strconv"
	"time"

	accounts "github.com/goliatone/go-user-accounts"
)

// AppConfig is an environment backed configuration provider. Values are read
// once at startup, after godotenv has had a chance to populate the process
// environment from a local .env file.
type AppConfig struct {
	SigningKey            string
	SigningMethod         string
	ContextKey            string
	TokenExpiration       int
	ExtendedTokenDuration int
	TokenLookup           string
	AuthScheme            string
	Issuer                string
	Audience              []string
	RejectedRouteKey      string
	RejectedRouteDefault  string
	BaseURL               string
	LinkTokenKey          string
	LinkTokenTTL          time.Duration

	AppName string

	DSN         string
	PingTimeout time.Duration
	Debug       bool

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	ServerAddr string
}

var _ accounts.Config = (*AppConfig)(nil)

// LoadConfig builds an AppConfig from the environment, applying defaults
// suitable for local development.
func LoadConfig() *AppConfig {
	return &AppConfig{
		SigningKey:            envString("AUTH_SIGNING_KEY", "development-signing-key"),
		SigningMethod:         envString("AUTH_SIGNING_METHOD", "HS256"),
		ContextKey:            envString("AUTH_CONTEXT_KEY", "user"),
		TokenExpiration:       envInt("AUTH_TOKEN_EXPIRATION", 168),
		ExtendedTokenDuration: envInt("AUTH_EXTENDED_TOKEN_DURATION", 720),
		TokenLookup:           envString("AUTH_TOKEN_LOOKUP", "cookie:user,header:Authorization"),
		AuthScheme:            envString("AUTH_SCHEME", "Bearer"),
		Issuer:                envString("AUTH_ISSUER", "accounts"),
		Audience:              []string{envString("AUTH_AUDIENCE", "accounts")},
		RejectedRouteKey:      envString("AUTH_REJECTED_ROUTE_KEY", "redirect"),
		RejectedRouteDefault:  envString("AUTH_REJECTED_ROUTE_DEFAULT", "/dashboard"),
		BaseURL:               envString("APP_BASE_URL", "http://localhost:8572"),
		LinkTokenKey:          envString("AUTH_LINK_TOKEN_KEY", "development-link-token-key"),
		LinkTokenTTL:          envDuration("AUTH_LINK_TOKEN_TTL", accounts.DefaultLinkTokenTTL),
		AppName:               envString("APP_NAME", "Accounts"),
		DSN:                   envString("DATABASE_DSN", "file:accounts.db?cache=shared&mode=rwc"),
		PingTimeout:           envDuration("DATABASE_PING_TIMEOUT", 5*time.Second),
		Debug:                 envBool("APP_DEBUG", false),
		SMTPHost:              envString("SMTP_HOST", "localhost"),
		SMTPPort:              envInt("SMTP_PORT", 1025),
		SMTPUser:              envString("SMTP_USER", ""),
		SMTPPass:              envString("SMTP_PASS", ""),
		SMTPFrom:              envString("SMTP_FROM", "no-reply@localhost"),
		ServerAddr:            envString("SERVER_ADDR", ":8572"),
	}
}

func (c *AppConfig) GetSigningKey() string            { return c.SigningKey }
func (c *AppConfig) GetSigningMethod() string         { return c.SigningMethod }
func (c *AppConfig) GetContextKey() string            { return c.ContextKey }
func (c *AppConfig) GetTokenExpiration() int          { return c.TokenExpiration }
func (c *AppConfig) GetExtendedTokenDuration() int    { return c.ExtendedTokenDuration }
func (c *AppConfig) GetTokenLookup() string           { return c.TokenLookup }
func (c *AppConfig) GetAuthScheme() string            { return c.AuthScheme }
func (c *AppConfig) GetIssuer() string                { return c.Issuer }
func (c *AppConfig) GetAudience() []string            { return c.Audience }
func (c *AppConfig) GetRejectedRouteKey() string      { return c.RejectedRouteKey }
func (c *AppConfig) GetRejectedRouteDefault() string  { return c.RejectedRouteDefault }
func (c *AppConfig) GetBaseURL() string               { return c.BaseURL }
func (c *AppConfig) GetLinkTokenKey() string          { return c.LinkTokenKey }
func (c *AppConfig) GetLinkTokenTTL() time.Duration   { return c.LinkTokenTTL }
func (c *AppConfig) GetDSN() string                   { return c.DSN }
func (c *AppConfig) GetPingTimeout() time.Duration    { return c.PingTimeout }
func (c *AppConfig) GetDebug() bool                   { return c.Debug }

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
