package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"maze.io/x/duration"

	"github.com/cleancode-uk/site/config"
	"github.com/cleancode-uk/site/htmldoc"
	"github.com/cleancode-uk/site/mediapref"
	"github.com/cleancode-uk/site/prefstore"
	"github.com/cleancode-uk/site/sitemap"
	"github.com/cleancode-uk/site/theme"
	"github.com/cleancode-uk/site/ts"
)

const (
	// these sizes are recommended by the gorilla/securecookie package
	// https://pkg.go.dev/github.com/gorilla/securecookie#New
	hashKeySize  = 32
	blockKeySize = 16
)

var (
	clock clockwork.Clock = clockwork.NewRealClock()

	// isTerminal is swapped out by tests.
	isTerminal = func(w io.Writer) bool {
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}

	withBlockKey bool

	sitemapOffset time.Duration
	sitemapBase   string

	themeVariant string
	themeStored  string
	themeSet     string
	themeOS      string
	themeFlip    bool
)

func generateKey(sz int) ([]byte, error) {
	key := make([]byte, sz)
	_, err := rand.Read(key)
	if err != nil {
		return nil, fmt.Errorf("generating random key: %w", err)
	}
	return key, nil
}

func generateKeys(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	hashKey, err := generateKey(hashKeySize)
	if err != nil {
		return fmt.Errorf("generating hash key: %w", err)
	}
	if isTerminal(out) {
		fmt.Fprintln(out, "# add to ~/.cleancode.yaml, or export as CLEANCODE_COOKIE_*")
	}
	fmt.Fprintf(out, "cookie_hash_key64: %s\n", base64.StdEncoding.EncodeToString(hashKey))

	if withBlockKey {
		blockKey, err := generateKey(blockKeySize)
		if err != nil {
			return fmt.Errorf("generating block key: %w", err)
		}
		fmt.Fprintf(out, "cookie_block_key64: %s\n", base64.StdEncoding.EncodeToString(blockKey))
	}
	return nil
}

// parseOffset accepts anything time.ParseDuration does plus d and w units.
func parseOffset(s string) (time.Duration, error) {
	d, err := duration.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("can't parse offset %q: %w", s, err)
	}
	return time.Duration(d), nil
}

func printSitemap(cmd *cobra.Command, args []string) error {
	config.Init()
	base := sitemapBase
	if base == "" {
		base = config.BaseURL()
	}
	c := sitemap.Config{
		Base:        base,
		Routes:      config.SitemapRoutes(),
		ContactPath: config.ContactPath(),
	}
	fake := clockwork.NewFakeClockAt(clock.Now().Add(sitemapOffset))
	today := ts.NewClock(fake).Today()
	return sitemap.Render(cmd.OutOrStdout(), sitemap.Entries(c, today))
}

func printThemeState(w io.Writer, label string, c *theme.Controller, root *htmldoc.Root, store *prefstore.Memory) {
	stored, ok := store.Get(theme.StorageKey)
	if !ok {
		stored = "(absent)"
	}
	fmt.Fprintf(w, "%-8s mode=%s resolved=%s stored=%s root=%s\n", label, c.Mode(), c.Resolved(), stored, root.OpenTag())
}

func resolveTheme(cmd *cobra.Command, args []string) error {
	variant, err := theme.ParseVariant(themeVariant)
	if err != nil {
		return err
	}
	var osDark bool
	switch themeOS {
	case "dark":
		osDark = true
	case "light":
	default:
		return fmt.Errorf("--os must be light or dark, not %q", themeOS)
	}

	store := prefstore.NewMemory()
	if themeStored != "" {
		store.Set(theme.StorageKey, themeStored)
	}
	root := htmldoc.NewRoot("en")
	media := mediapref.NewSwitch(osDark)

	c := theme.New(theme.Config{
		Variant:  variant,
		Storage:  store,
		Document: root,
		Media:    media,
	})
	c.Init()
	defer c.Close()

	out := cmd.OutOrStdout()
	printThemeState(out, "init", c, root, store)

	if themeSet != "" {
		c.SetMode(theme.Mode(themeSet))
		printThemeState(out, "set", c, root, store)
	}
	if themeFlip {
		media.Set(!osDark)
		printThemeState(out, "os-flip", c, root, store)
	}
	return nil
}
