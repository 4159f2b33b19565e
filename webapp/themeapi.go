package webapp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/cleancode-uk/site/he"
	"github.com/cleancode-uk/site/theme"
)

// maxThemeBody is far more than {"mode":"light"} needs.
const maxThemeBody = 1 << 10

type themeState struct {
	Mode     theme.Mode     `json:"mode"`
	Resolved theme.Resolved `json:"resolved"`
	Variant  theme.Variant  `json:"variant"`
	Modes    []theme.Mode   `json:"modes"`
}

type setThemeRequest struct {
	Mode string `json:"mode"`
}

func (app *App) writeThemeState(w http.ResponseWriter, c *theme.Controller) {
	bytes, err := json.Marshal(&themeState{
		Mode:     c.Mode(),
		Resolved: c.Resolved(),
		Variant:  c.Variant(),
		Modes:    c.Variant().Modes(),
	})
	if err != nil {
		he.SendErrorToHTTPClient(w, "marshal theme state", err)
		return
	}
	askForHints(w)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(bytes); err != nil {
		log.Printf("error writing theme state to client: %v", err)
	}
}

func (app *App) handleGetTheme(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	c := app.controllerFor(w, r, nil)
	defer c.Close()
	app.writeThemeState(w, c)
}

// requestedMode pulls the mode out of a JSON body or a form post.
func requestedMode(w http.ResponseWriter, r *http.Request) (string, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxThemeBody))
		if err != nil {
			return "", he.HTTPCodedErrorf(http.StatusBadRequest, "can't read body: %v", err)
		}
		var req setThemeRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return "", he.HTTPCodedErrorf(http.StatusBadRequest, "can't unmarshal %q: %v", string(body), err)
		}
		return req.Mode, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxThemeBody)
	if err := r.ParseForm(); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return "", he.New(http.StatusRequestEntityTooLarge, err)
		}
		return "", he.HTTPCodedErrorf(http.StatusBadRequest, "can't parse form: %v", err)
	}
	return r.FormValue("mode"), nil
}

func (app *App) handleSetTheme(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	raw, err := requestedMode(w, r)
	if err != nil {
		he.SendErrorToHTTPClient(w, "set theme", err)
		return
	}
	m, ok := app.variant.ParseMode(raw)
	if !ok {
		badModes.Add(1)
		he.SendErrorToHTTPClient(w, "set theme", he.HTTPCodedErrorf(http.StatusBadRequest, "unknown mode %q (have %v)", raw, app.variant.Modes()))
		return
	}

	c := app.controllerFor(w, r, nil)
	defer c.Close()
	c.SetMode(m)
	modesSet.Add(1)

	app.writeThemeState(w, c)
}
