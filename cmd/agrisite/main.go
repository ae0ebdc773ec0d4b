// Command agrisite runs a development server with plain built-in views.
// Production deployments embed the engine as a library and supply their own
// templ components; this binary is for trying the engine out and for local
// content editing.
package main

import (
	"log"
	"os"

	"github.com/agripal/agrisite"
)

func main() {
	cfg := agrisite.SiteConfig{
		Name:          agrisite.EnvOr("SITE_NAME", "AgriPal"),
		URL:           agrisite.EnvOr("SITE_URL", "http://localhost:3000"),
		Description:   agrisite.EnvOr("SITE_DESCRIPTION", "Agricultural insights, books, and courses"),
		Addr:          agrisite.EnvOr("ADDR", ":3000"),
		DatabasePath:  agrisite.EnvOr("DATABASE_PATH", "data/agrisite.db"),
		CoverDir:      agrisite.EnvOr("COVER_DIR", "public/covers"),
		AdminEmail:    agrisite.MustEnv("ADMIN_EMAIL"),
		AdminPassword: agrisite.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: agrisite.MustEnv("SESSION_SECRET"),
		CookieSecure:  os.Getenv("COOKIE_SECURE") == "true",
		Environment:   agrisite.EnvOr("ENV", "development"),
	}

	app := agrisite.New(cfg, devViews())
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
