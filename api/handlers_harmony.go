package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/luciasjperez85-svg/markersinorder/colorspace"
	"github.com/luciasjperez85-svg/markersinorder/harmony"
	"github.com/luciasjperez85-svg/markersinorder/models"
)

type harmonyRequest struct {
	Type    string          `json:"type"`
	BaseHex string          `json:"baseHex"`
	Count   *int            `json:"count"`
	Colors  []models.Swatch `json:"colors"`
}

type harmonyResponse struct {
	Type    string          `json:"type"`
	BaseHex string          `json:"baseHex"`
	Colors  []models.Swatch `json:"colors"`
}

type suggestionsRequest struct {
	Colors []models.Swatch `json:"colors"`
}

type suggestionsResponse struct {
	Palettes []models.Palette `json:"palettes"`
}

// collectionOr returns the supplied swatches, or the stored collection when
// the request carried none.
func (app *Application) collectionOr(swatches []models.Swatch) ([]models.Swatch, error) {
	if swatches != nil {
		return swatches, nil
	}
	return app.CollectionRepo.GetColors()
}

// POST /v1/harmony
func (app *Application) findHarmony(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}

	req := &harmonyRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	base, err := colorspace.NormalizeHex(req.BaseHex)
	if err != nil {
		app.badRequest(w, r, fmt.Errorf("baseHex: %w", err))
		return
	}

	count := harmony.DefaultCount(req.Type)
	if req.Count != nil {
		count = *req.Count
	}

	collection, err := app.collectionOr(req.Colors)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	matches, err := harmony.Find(req.Type, collection, base, count)
	if errors.Is(err, harmony.ErrUnknownHarmony) {
		app.badRequest(w, r, fmt.Errorf("%w: %q, expected one of %v", err, req.Type, harmony.Types()))
		return
	}
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, harmonyResponse{Type: req.Type, BaseHex: base, Colors: matches})
}

// GET or POST /v1/palettes/suggestions
func (app *Application) suggestPalettes(w http.ResponseWriter, r *http.Request) {
	var supplied []models.Swatch

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		req := &suggestionsRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			app.badJSONRequest(w, r, err)
			return
		}
		supplied = req.Colors
		if supplied == nil {
			supplied = []models.Swatch{}
		}
	default:
		app.methodNotAllowed(w, r, fmt.Errorf("GET or POST method required for this endpoint"), http.MethodGet, http.MethodPost)
		return
	}

	collection, err := app.collectionOr(supplied)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{Palettes: harmony.Suggest(collection)})
}
