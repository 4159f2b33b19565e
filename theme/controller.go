/*
Package theme decides whether a page is light or dark.

A Controller owns the visitor's Mode, persists it, follows the OS preference
while in auto, and keeps the document root's data-bs-theme attribute in step.
Everything environmental (storage, document, OS signal) comes in through
the ports in ports.go; pass nil for the ones a context doesn't have.

Lifecycle: New, then Init once, then any number of SetMode calls, then Close.
*/
package theme

import (
	"log"
	"sync"

	"github.com/cleancode-uk/site/observable"
	"github.com/cleancode-uk/site/varz"
)

var (
	modeChanges      = varz.NewInt("modeChanges")
	osChangesApplied = varz.NewInt("osChangesApplied")
	persistFailures  = varz.NewInt("persistFailures")
)

// Config holds the ports for a Controller.  Nil ports become the Null
// implementations.
type Config struct {
	Variant  Variant
	Storage  Storage
	Document Document
	Media    MediaSource
}

// Controller is the theme preference state machine.
type Controller struct {
	variant Variant
	storage Storage
	doc     Document
	media   MediaSource

	mode     *observable.Value[Mode]
	resolved *observable.Derived[Mode, Resolved]

	mu     sync.Mutex
	inited bool
	closed bool
	stops  []func()
}

// New builds a Controller and seeds its Mode from storage.  This is the only
// storage read the Controller ever does.
func New(config Config) *Controller {
	c := &Controller{
		variant: config.Variant,
		storage: config.Storage,
		doc:     config.Document,
		media:   config.Media,
	}
	if c.variant == "" {
		c.variant = VariantFull
	}
	if c.storage == nil {
		c.storage = NullStorage{}
	}
	if c.doc == nil {
		c.doc = NullDocument{}
	}
	if c.media == nil {
		c.media = NullMedia{}
	}

	c.mode = observable.NewValue(c.initialMode())
	c.resolved = observable.Derive(c.mode, func(m Mode) Resolved {
		return c.variant.Resolve(m, c.media.PrefersDark())
	})
	return c
}

func (c *Controller) initialMode() Mode {
	v, ok := c.storage.Get(StorageKey)
	if !ok {
		return DefaultMode
	}
	m, ok := c.variant.ParseMode(v)
	if !ok {
		log.Printf("theme: ignoring persisted %s=%q", StorageKey, v)
		return DefaultMode
	}
	return m
}

// Init applies the current Mode to the document and starts persisting and
// applying every change.  In the full variant it also starts following the
// OS preference while the Mode is auto.
//
// Init is idempotent; only the first call on a live Controller does
// anything.
func (c *Controller) Init() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inited || c.closed {
		log.Printf("theme: Init called again (inited=%v, closed=%v), ignoring", c.inited, c.closed)
		return
	}
	c.inited = true

	c.Apply(c.mode.Get())
	// The OS may have changed since New.
	c.resolved.Recompute()

	c.stops = append(c.stops, c.mode.Subscribe(c.persistAndApply))

	if c.variant != VariantDarkOnly {
		c.stops = append(c.stops, c.media.OnChange(c.osChanged))
	}
}

func (c *Controller) persistAndApply(m Mode) {
	modeChanges.Add(1)
	if err := c.storage.Set(StorageKey, string(m)); err != nil {
		persistFailures.Add(1)
		log.Printf("theme: can't persist mode %q: %v", m, err)
	}
	c.Apply(m)
}

func (c *Controller) osChanged(bool) {
	if c.mode.Get() != Auto {
		return
	}
	osChangesApplied.Add(1)
	c.Apply(Auto)
	c.resolved.Recompute()
}

// Close stops following the OS preference and stops persisting changes.  A
// closed Controller can't be re-initialized.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for _, stop := range c.stops {
		stop()
	}
	c.stops = nil
	c.resolved.Detach()
}

// Apply reflects m onto the document root.  Auto removes the attribute so
// the stylesheet's prefers-color-scheme rule takes over.
func (c *Controller) Apply(m Mode) {
	if c.variant == VariantDarkOnly {
		c.doc.SetAttribute(Attribute, string(Dark))
		return
	}
	if m == Auto {
		c.doc.RemoveAttribute(Attribute)
		return
	}
	c.doc.SetAttribute(Attribute, string(m))
}

// SetMode makes m current.  Modes the variant doesn't offer become
// DefaultMode.  Setting the same Mode again still persists and re-applies.
// A closed Controller ignores SetMode.
func (c *Controller) SetMode(m Mode) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		log.Printf("theme: SetMode(%q) on a closed controller, ignoring", m)
		return
	}
	if !c.variant.Recognizes(m) {
		log.Printf("theme: %s variant has no mode %q, using %q", c.variant, m, DefaultMode)
		m = DefaultMode
	}
	c.mode.Set(m)
}

// Mode returns the current Mode.
func (c *Controller) Mode() Mode {
	return c.mode.Get()
}

// Resolved returns what's currently displayed.
func (c *Controller) Resolved() Resolved {
	return c.resolved.Get()
}

// Variant returns the Controller's variant.
func (c *Controller) Variant() Variant {
	return c.variant
}

// SubscribeMode calls l after every SetMode.
func (c *Controller) SubscribeMode(l func(Mode)) (unsubscribe func()) {
	return c.mode.Subscribe(l)
}

// SubscribeResolved calls l whenever the resolved value is recomputed.
func (c *Controller) SubscribeResolved(l func(Resolved)) (unsubscribe func()) {
	return c.resolved.Subscribe(l)
}
