package agrisite

import "time"

// SiteConfig holds all configuration for an agrisite instance.
type SiteConfig struct {
	Name        string // Site name (default "AgriPal")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/agrisite.db")
	CoverDir     string // Cover image directory (default "public/covers")

	AdminEmail    string // Required: admin sign-in email
	AdminPassword string // Required: admin sign-in password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	CacheTTL    time.Duration // Content cache TTL (default 5min)
	Environment string        // "development" enables pretty log output
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "AgriPal"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/agrisite.db"
	}
	if c.CoverDir == "" {
		c.CoverDir = "public/covers"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
