package theme

// Storage is client-side durable key-value storage.
//
// Get reports false when the key is absent or storage is unavailable.  Set
// returns an error when the write didn't happen; the controller logs it and
// carries on.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Document is the rendered document's root element.
type Document interface {
	SetAttribute(name, value string)
	RemoveAttribute(name string)
}

// MediaSource is the OS color-scheme preference signal.
type MediaSource interface {
	PrefersDark() bool

	// OnChange registers fn to be called when the preference flips.
	OnChange(fn func(prefersDark bool)) (unsubscribe func())
}

// NullStorage is storage that isn't there: nothing reads, writes vanish.
type NullStorage struct{}

var _ Storage = NullStorage{}

func (NullStorage) Get(string) (string, bool) { return "", false }
func (NullStorage) Set(string, string) error  { return nil }

// NullDocument is for contexts that have no document to mutate.
type NullDocument struct{}

var _ Document = NullDocument{}

func (NullDocument) SetAttribute(string, string) {}
func (NullDocument) RemoveAttribute(string)      {}

// NullMedia never prefers dark and never changes.
type NullMedia struct{}

var _ MediaSource = NullMedia{}

func (NullMedia) PrefersDark() bool                 { return false }
func (NullMedia) OnChange(func(bool)) (unsub func()) { return func() {} }
