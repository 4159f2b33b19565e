package sitemap

import (
	"bytes"
	"log"
	"net/http"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cleancode-uk/site/dep"
	"github.com/cleancode-uk/site/he"
	"github.com/cleancode-uk/site/varz"
)

// A couple of days is plenty; the body only changes at UTC midnight.
const cacheSize = 4

var (
	cacheHits   = varz.NewInt("cacheHits")
	cacheMisses = varz.NewInt("cacheMisses")
)

// Today reports the current UTC date as YYYY-MM-DD.  *ts.Clock implements
// this.
type Today interface {
	Today() string
}

// Handler serves the sitemap, rendering it at most once per day.
type Handler struct {
	config Config
	clock  Today
	cache  *lru.Cache[string, []byte]
}

var _ http.Handler = (*Handler)(nil)

func NewHandler(config Config, clock Today) *Handler {
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		log.Fatalf("can't create sitemap cache: %v", err)
	}
	return &Handler{
		config: config.withDefaults(),
		clock:  dep.Required(clock),
		cache:  cache,
	}
}

// Body returns the sitemap for the current date.
func (h *Handler) Body() ([]byte, error) {
	today := h.clock.Today()
	if b, ok := h.cache.Get(today); ok {
		cacheHits.Add(1)
		return b, nil
	}
	cacheMisses.Add(1)

	var buf bytes.Buffer
	if err := Render(&buf, Entries(h.config, today)); err != nil {
		return nil, err
	}
	b := buf.Bytes()
	h.cache.Add(today, b)
	return b, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		he.SendErrorToHTTPClient(w, "serve sitemap", he.HTTPCodedErrorf(http.StatusMethodNotAllowed, "method %s not allowed", r.Method))
		return
	}

	body, err := h.Body()
	if err != nil {
		he.SendErrorToHTTPClient(w, "render sitemap", err)
		return
	}

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(body); err != nil {
		log.Printf("error writing sitemap to client: %v", err)
	}
}
