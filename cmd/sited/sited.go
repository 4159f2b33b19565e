package main

import (
	"context"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cleancode-uk/site/assets"
	"github.com/cleancode-uk/site/config"
	"github.com/cleancode-uk/site/prefstore"
	"github.com/cleancode-uk/site/sitemap"
	"github.com/cleancode-uk/site/ts"
	"github.com/cleancode-uk/site/webapp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	config.Init()

	clock := ts.NewRealClock()
	subFS, err := fs.Sub(assets.FS, "fs")
	if err != nil {
		log.Fatalf("fs.Sub: %v", err)
	}

	variant, err := config.ThemeVariant()
	if err != nil {
		log.Fatalf("can't configure theme: %v", err)
	}

	codec, err := prefstore.NewCodec(config.CookieHashKey64(), config.CookieBlockKey64())
	if err != nil {
		log.Fatalf("can't configure cookies: %v", err)
	}
	if codec == nil {
		log.Printf("no cookie keys configured, theme cookie is unsigned")
	}

	app := webapp.New(&webapp.Config{
		Variant: variant,
		Sitemap: sitemap.Config{
			Base:        config.BaseURL(),
			Routes:      config.SitemapRoutes(),
			ContactPath: config.ContactPath(),
		},
		Cookies: prefstore.CookieOptions{
			Domain: config.CookieDomain(),
			Secure: config.SecureCookies(),
			Codec:  codec,
		},
		AllowedOrigins: config.AllowedOrigins(),
		EnableCaching:  config.EnableCaching(),
		StaticMaxAge:   config.StaticMaxAge(),
		SubFS:          subFS,
		Clock:          clock,
		TarpitStep:     config.TarpitStep(),
		TarpitMaxDelay: config.TarpitMaxDelay(),
		TarpitClock:    clock.RealClock(),
	})

	if err := app.Serve(ctx, config.ListenAddress()); err != nil {
		log.Fatalf("can't serve: %v", err)
	}
	log.Printf("bye")
}
