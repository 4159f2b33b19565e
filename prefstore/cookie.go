package prefstore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const cookieMaxAge = 365 * 24 * time.Hour

// Codec signs (and, with a block key, encrypts) cookie values.  A nil
// *Codec means values are stored in the clear.
type Codec struct {
	sc *securecookie.SecureCookie
}

// NewCodec builds a Codec from base64 keys.  An empty hash key returns
// (nil, nil): plain cookies.  The block key is optional.
func NewCodec(hashKey64, blockKey64 string) (*Codec, error) {
	if hashKey64 == "" {
		return nil, nil
	}
	hashKey, err := base64.StdEncoding.DecodeString(hashKey64)
	if err != nil {
		return nil, fmt.Errorf("bad cookie hash key: %w", err)
	}
	var blockKey []byte
	if blockKey64 != "" {
		if blockKey, err = base64.StdEncoding.DecodeString(blockKey64); err != nil {
			return nil, fmt.Errorf("bad cookie block key: %w", err)
		}
	}
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(cookieMaxAge.Seconds()))
	return &Codec{sc: sc}, nil
}

func (c *Codec) encode(name, value string) (string, error) {
	if c == nil {
		return value, nil
	}
	return c.sc.Encode(name, value)
}

func (c *Codec) decode(name, raw string) (string, error) {
	if c == nil {
		return raw, nil
	}
	var v string
	if err := c.sc.Decode(name, raw, &v); err != nil {
		return "", err
	}
	return v, nil
}

// CookieOptions are the attributes written with every cookie.
type CookieOptions struct {
	Domain string
	Secure bool
	Codec  *Codec
}

// Cookies is request-scoped storage backed by the visitor's cookies.  Reads
// see the request's cookies plus anything Set during this request.
type Cookies struct {
	r       *http.Request
	w       http.ResponseWriter
	opts    CookieOptions
	written map[string]string
}

// NewCookies returns storage over r's cookies that writes Set-Cookie to w.
// Either may be nil: no request reads as empty, no writer drops writes.
func NewCookies(r *http.Request, w http.ResponseWriter, opts CookieOptions) *Cookies {
	return &Cookies{r: r, w: w, opts: opts, written: map[string]string{}}
}

func (c *Cookies) Get(key string) (string, bool) {
	if v, ok := c.written[key]; ok {
		return v, true
	}
	if c.r == nil {
		return "", false
	}
	cookie, err := c.r.Cookie(key)
	if err != nil {
		return "", false
	}
	v, err := c.opts.Codec.decode(key, cookie.Value)
	if err != nil {
		log.Printf("can't decode cookie %q: %v", key, err)
		return "", false
	}
	return v, true
}

var errNoWriter = errors.New("no response to write cookies to")

func (c *Cookies) Set(key, value string) error {
	if c.w == nil {
		return errNoWriter
	}
	encoded, err := c.opts.Codec.encode(key, value)
	if err != nil {
		return fmt.Errorf("can't encode cookie %q: %w", key, err)
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    encoded,
		Path:     "/",
		Domain:   c.opts.Domain,
		MaxAge:   int(cookieMaxAge.Seconds()),
		Secure:   c.opts.Secure,
		HttpOnly: c.opts.Codec != nil,
		SameSite: http.SameSiteLaxMode,
	})
	c.written[key] = value
	return nil
}
