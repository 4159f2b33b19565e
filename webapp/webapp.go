package webapp

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"

	"github.com/cleancode-uk/site/app/handlers"
	"github.com/cleancode-uk/site/assets"
	"github.com/cleancode-uk/site/dep"
	"github.com/cleancode-uk/site/he"
	"github.com/cleancode-uk/site/htmldoc"
	"github.com/cleancode-uk/site/mediapref"
	"github.com/cleancode-uk/site/middleware"
	"github.com/cleancode-uk/site/middleware/labrea"
	"github.com/cleancode-uk/site/prefstore"
	"github.com/cleancode-uk/site/sitemap"
	"github.com/cleancode-uk/site/theme"
	"github.com/cleancode-uk/site/varz"
)

var (
	pagesRendered = varz.NewInt("pagesRendered")
	modesSet      = varz.NewInt("modesSet")
	badModes      = varz.NewInt("badModes")
)

// sitemap lastmod only moves at midnight, so an hour is safe.
const sitemapMaxAge = time.Hour

type clock interface {
	Now() time.Time
	Today() string
}

// Config holds the configuration for creating a new App.
type Config struct {
	Variant        theme.Variant
	Sitemap        sitemap.Config
	Cookies        prefstore.CookieOptions
	AllowedOrigins []string
	EnableCaching  bool
	StaticMaxAge   time.Duration
	SubFS          fs.FS
	Clock          clock

	// Tarpit delays for scanner paths; zero steps mean no delay.
	TarpitStep     time.Duration
	TarpitMaxDelay time.Duration
	// TarpitClock sleeps for the tarpit.  Nil means a real clock.
	TarpitClock clockwork.Clock
}

type navLink struct {
	Path    string
	Title   string
	Current bool
}

// App is the site.
type App struct {
	// storage
	templates *template.Template
	subFS     fs.FS

	// dependencies
	variant theme.Variant
	cookies prefstore.CookieOptions
	clock   clock
	sitemap *sitemap.Handler
	routes  []string
	base    string

	// internals
	mux     *http.ServeMux
	handler http.Handler
	caching bool
	static  time.Duration
}

// New creates a new App with the given configuration.
func New(config *Config) *App {
	variant := config.Variant
	if variant == "" {
		variant = theme.VariantFull
	}
	sm := config.Sitemap
	if sm.Routes == nil {
		sm.Routes = sitemap.DefaultRoutes
	}
	if sm.Base == "" {
		sm.Base = sitemap.DefaultBase
	}

	app := &App{
		subFS:   dep.Required(config.SubFS),
		clock:   dep.Required(config.Clock),
		variant: variant,
		cookies: config.Cookies,
		routes:  sm.Routes,
		base:    sm.Base,
		mux:     http.NewServeMux(),
		caching: config.EnableCaching,
		static:  config.StaticMaxAge,
	}
	app.sitemap = sitemap.NewHandler(sm, app.clock)

	// Stack the handlers together.
	csp := http.NewCrossOriginProtection()
	for _, origin := range config.AllowedOrigins {
		if err := csp.AddTrustedOrigin(origin); err != nil {
			log.Fatalf("can't trust origin %q: %v", origin, err)
		}
	}
	logger := middleware.NewRequestLogger(csp.Handler(app.mux), app.clock)
	tarpitClock := config.TarpitClock
	if tarpitClock == nil {
		tarpitClock = clockwork.NewRealClock()
	}
	tarpit := labrea.New(&labrea.Config{
		Clock:    tarpitClock,
		Step:     config.TarpitStep,
		MaxDelay: config.TarpitMaxDelay,
		Next:     logger,
	})
	app.handler = tarpit
	// rs/cors allows every origin when given none.
	if len(config.AllowedOrigins) > 0 {
		for _, origin := range config.AllowedOrigins {
			log.Printf("CORS allowing origin %s", origin)
		}
		app.handler = cors.New(cors.Options{
			AllowedOrigins:   config.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		}).Handler(tarpit)
	}

	app.loadTemplates()
	app.InstallHandlers()

	return app
}

// Handler returns the configured HTTP handler.
func (app *App) Handler() http.Handler {
	return app.handler
}

func (app *App) handleFunc(pattern string, handler func(context.Context, http.ResponseWriter, *http.Request)) {
	app.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		handler(ctx, w, r)
	})
}

func (app *App) cached(next http.Handler, maxAge time.Duration, private bool) http.Handler {
	return middleware.NewCacheHeaderAdder(&middleware.CacheHeaderAdderConfig{
		Enabled:      app.caching,
		Next:         next,
		MaxAge:       maxAge,
		CachePrivate: private,
	})
}

// InstallHandlers wires every route onto the app's mux.
func (app *App) InstallHandlers() {
	app.handleFunc("/", app.handlePage)

	app.mux.HandleFunc("/robots.txt", handlers.RobotsTXT(app.base))

	app.mux.Handle("/sitemap.xml", app.cached(app.sitemap, sitemapMaxAge, false))

	// anything in fs is a file trivially shared
	app.mux.Handle("/fs/", app.cached(
		http.StripPrefix("/fs/", http.FileServer(http.FS(app.subFS))), app.static, false))

	app.handleFunc("GET /api/theme", app.handleGetTheme)
	app.handleFunc("POST /api/theme", app.handleSetTheme)

	app.mux.Handle("/debug/vars", varz.Handler())
}

func (app *App) loadTemplates() {
	var err error
	if app.templates, err = template.New("root").ParseFS(assets.Templates, "templates/*[^~]"); err != nil {
		log.Fatalf("error loading embedded templates: %v", err)
	}
	for _, tmpl := range app.templates.Templates() {
		log.Printf("loaded template %q", tmpl.Name())
	}
}

// controllerFor builds a theme controller for one request.  Storage is the
// visitor's cookies, the OS signal is the client hint, and the document is
// doc (nil for API calls, which have no page).
func (app *App) controllerFor(w http.ResponseWriter, r *http.Request, doc theme.Document) *theme.Controller {
	c := theme.New(theme.Config{
		Variant:  app.variant,
		Storage:  prefstore.NewCookies(r, w, app.cookies),
		Document: doc,
		Media:    mediapref.FromRequest(r),
	})
	c.Init()
	return c
}

// askForHints asks the browser to send the color-scheme client hint next
// time, and tells caches the response depends on it.
func askForHints(w http.ResponseWriter) {
	w.Header().Set("Accept-CH", mediapref.HintHeader)
	w.Header().Add("Vary", mediapref.HintHeader+", Cookie")
}

func (app *App) isPage(path string) bool {
	for _, p := range app.routes {
		if p == path {
			return true
		}
	}
	return false
}

func titleFor(path string) string {
	if path == "/" {
		return "Home"
	}
	seg := strings.Trim(path, "/")
	if i := strings.LastIndex(seg, "/"); i != -1 {
		seg = seg[i+1:]
	}
	seg = strings.ReplaceAll(seg, "-", " ")
	if seg == "" {
		return path
	}
	return strings.ToUpper(seg[:1]) + seg[1:]
}

func (app *App) nav(current string) []navLink {
	links := make([]navLink, 0, len(app.routes))
	for _, p := range app.routes {
		links = append(links, navLink{Path: p, Title: titleFor(p), Current: p == current})
	}
	return links
}

func (app *App) handlePage(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		he.SendErrorToHTTPClient(w, "render page", he.HTTPCodedErrorf(http.StatusMethodNotAllowed, "method %s not allowed", r.Method))
		return
	}
	if !app.isPage(r.URL.Path) {
		he.SendErrorToHTTPClient(w, "find page", he.HTTPCodedErrorf(http.StatusNotFound, "no page at %s", r.URL.Path))
		return
	}

	root := htmldoc.NewRoot("en")
	c := app.controllerFor(w, r, root)
	defer c.Close()

	args := struct {
		Root     *htmldoc.Root
		Title    string
		Mode     theme.Mode
		Resolved theme.Resolved
		Modes    []theme.Mode
		Nav      []navLink
		Script   template.JS
	}{
		Root:     root,
		Title:    titleFor(r.URL.Path),
		Mode:     c.Mode(),
		Resolved: c.Resolved(),
		Modes:    app.variant.Modes(),
		Nav:      app.nav(r.URL.Path),
		Script:   themeScript,
	}

	var buf bytes.Buffer
	if err := app.templates.ExecuteTemplate(&buf, "page.html.tmpl", args); err != nil {
		he.SendErrorToHTTPClient(w, "render template", err)
		return
	}
	pagesRendered.Add(1)

	askForHints(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if app.caching {
		// The attribute comes from the cookie, so no shared caching.
		w.Header().Set("Cache-Control", "private, no-cache")
	}
	if r.Method == http.MethodHead {
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("error writing page to client: %v", err)
	}
}

// Wrapper to just return the input context.
func contextualizer(ctx context.Context) func(net.Listener) context.Context {
	return func(_ net.Listener) context.Context {
		return ctx
	}
}

// Serve runs the HTTP server on listenAddress until ctx is cancelled or the
// listener fails.
func (app *App) Serve(ctx context.Context, listenAddress string) error {
	server := &http.Server{
		Addr:         listenAddress,
		Handler:      app.handler,
		BaseContext:  contextualizer(ctx),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	ch := make(chan error, 1)
	go func() {
		ch <- server.ListenAndServe()
	}()

	log.Printf("serving on %s", listenAddress)
	select {
	case err := <-ch:
		return fmt.Errorf("server exited: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("can't shut down cleanly: %w", err)
	}
	return nil
}
