package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/luciasjperez85-svg/markersinorder/calibration"
	"github.com/luciasjperez85-svg/markersinorder/chromatic"
	"github.com/luciasjperez85-svg/markersinorder/colorspace"
	"github.com/luciasjperez85-svg/markersinorder/models"
	"github.com/samber/lo"
)

type collectionResponse struct {
	SortMode models.SortMode `json:"sortMode"`
	Colors   []models.Swatch `json:"colors"`
}

// addColorsRequest accepts a single swatch at the top level, or a list under
// "colors". A top-level JSON array is also accepted.
type addColorsRequest struct {
	models.SwatchRequest
	Colors      []models.SwatchRequest `json:"colors"`
	Calibration *calibration.Matrix    `json:"calibration"`
}

type duplicateSwatch struct {
	Hex        string  `json:"hex"`
	Name       string  `json:"name"`
	MatchesHex string  `json:"matchesHex"`
	DeltaE     float64 `json:"deltaE"`
}

type addColorsResponse struct {
	Added      []models.Swatch   `json:"added"`
	Rejected   []models.Rejected `json:"rejected"`
	Duplicates []duplicateSwatch `json:"duplicates"`
	SortMode   models.SortMode   `json:"sortMode"`
	Colors     []models.Swatch   `json:"colors"`
}

var errNoColors = errors.New("no colors supplied")

// /v1/colors
func (app *Application) colors(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		app.listColors(w, r)
	case http.MethodPost:
		app.requireOperator(app.addColors)(w, r)
	default:
		app.methodNotAllowed(w, r, fmt.Errorf("GET or POST method required for this endpoint"), http.MethodGet, http.MethodPost)
	}
}

// GET /v1/colors
func (app *Application) listColors(w http.ResponseWriter, r *http.Request) {
	swatches, err := app.CollectionRepo.GetColors()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	mode, err := app.CollectionRepo.GetSortMode()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, collectionResponse{SortMode: mode, Colors: swatches})
}

// GET /v1/colors/export
func (app *Application) exportColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.methodNotAllowed(w, r, ErrGET, http.MethodGet)
		return
	}

	swatches, err := app.CollectionRepo.GetColors()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := models.EncodeExport(&buf, swatches); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="collection.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func decodeAddColors(body io.Reader) (addColorsRequest, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return addColorsRequest{}, err
	}

	var req addColorsRequest
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &req.Colors); err != nil {
			return addColorsRequest{}, err
		}
		return req, nil
	}

	if err := json.Unmarshal(raw, &req); err != nil {
		return addColorsRequest{}, err
	}
	if len(req.Colors) == 0 && req.Hex != "" {
		req.Colors = []models.SwatchRequest{req.SwatchRequest}
	}
	return req, nil
}

// calibrate corrects each incoming hex. Invalid hex is left for
// BuildSwatches to reject.
func calibrate(reqs []models.SwatchRequest, matrix *calibration.Matrix) []models.SwatchRequest {
	if matrix == nil {
		return reqs
	}
	return lo.Map(reqs, func(req models.SwatchRequest, _ int) models.SwatchRequest {
		if corrected, err := matrix.ApplyHex(req.Hex); err == nil {
			req.Hex = corrected
		}
		return req
	})
}

// dropNearDuplicates skips candidates within threshold CIEDE2000 of a swatch
// already in the collection or accepted earlier in the same batch.
func dropNearDuplicates(existing, candidates []models.Swatch, threshold float64) ([]models.Swatch, []duplicateSwatch) {
	if threshold <= 0 {
		return candidates, nil
	}

	accepted := make([]models.Swatch, 0, len(candidates))
	var duplicates []duplicateSwatch
	for _, candidate := range candidates {
		pool := append(append([]models.Swatch{}, existing...), accepted...)

		var match *duplicateSwatch
		for _, other := range pool {
			distance, err := colorspace.DeltaE(candidate.Hex, other.Hex)
			if err != nil || distance > threshold {
				continue
			}
			match = &duplicateSwatch{Hex: candidate.Hex, Name: candidate.Name, MatchesHex: other.Hex, DeltaE: distance}
			break
		}

		if match != nil {
			duplicates = append(duplicates, *match)
			continue
		}
		accepted = append(accepted, candidate)
	}
	return accepted, duplicates
}

// POST /v1/colors
func (app *Application) addColors(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAddColors(r.Body)
	if err != nil {
		app.badJSONRequest(w, r, err)
		return
	}
	if len(req.Colors) == 0 {
		app.badRequest(w, r, errNoColors)
		return
	}

	candidates, rejected := models.BuildSwatches(calibrate(req.Colors, req.Calibration))

	app.mu.Lock()
	defer app.mu.Unlock()

	existing, err := app.CollectionRepo.GetColors()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	mode, err := app.CollectionRepo.GetSortMode()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	added, duplicates := dropNearDuplicates(existing, candidates, app.Config.DuplicateDeltaE)

	collection := existing
	status := http.StatusOK
	if len(added) > 0 {
		collection = chromatic.SortBy(mode, append(existing, added...))
		if err := app.CollectionRepo.SaveColors(collection); err != nil {
			app.internalServerError(w, r, err)
			return
		}
		status = http.StatusCreated
	}

	app.Logger.Info("colors added",
		"added", len(added),
		"rejected", len(rejected),
		"duplicates", len(duplicates),
		"total", len(collection),
	)

	writeJSON(w, status, addColorsResponse{
		Added:      added,
		Rejected:   lo.Ternary(rejected == nil, []models.Rejected{}, rejected),
		Duplicates: lo.Ternary(duplicates == nil, []duplicateSwatch{}, duplicates),
		SortMode:   mode,
		Colors:     collection,
	})
}

// DELETE /v1/colors/{id}
func (app *Application) deleteColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		app.methodNotAllowed(w, r, ErrDELETE, http.MethodDelete)
		return
	}
	id := r.PathValue("id")

	app.mu.Lock()
	defer app.mu.Unlock()

	swatches, err := app.CollectionRepo.GetColors()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	remaining := lo.Filter(swatches, func(swatch models.Swatch, _ int) bool {
		return swatch.ID != id
	})
	if len(remaining) == len(swatches) {
		app.notFound(w, r, fmt.Errorf("no color with id %q", id))
		return
	}

	if err := app.CollectionRepo.SaveColors(remaining); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.Logger.Info("color deleted", "id", id, "total", len(remaining))
	mode, err := app.CollectionRepo.GetSortMode()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collectionResponse{SortMode: mode, Colors: remaining})
}

// POST /v1/colors/clear
func (app *Application) clearColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if err := app.CollectionRepo.SaveColors([]models.Swatch{}); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	mode, err := app.CollectionRepo.GetSortMode()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.Logger.Info("collection cleared")
	writeJSON(w, http.StatusOK, collectionResponse{SortMode: mode, Colors: []models.Swatch{}})
}

type sortModeRequest struct {
	Mode string `json:"mode"`
}

// /v1/sort-mode
func (app *Application) sortMode(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		mode, err := app.CollectionRepo.GetSortMode()
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]models.SortMode{"sortMode": mode})
	case http.MethodPut:
		app.requireOperator(app.setSortMode)(w, r)
	default:
		app.methodNotAllowed(w, r, fmt.Errorf("GET or PUT method required for this endpoint"), http.MethodGet, http.MethodPut)
	}
}

// PUT /v1/sort-mode
func (app *Application) setSortMode(w http.ResponseWriter, r *http.Request) {
	req := &sortModeRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	mode, err := models.ParseSortMode(req.Mode)
	if err != nil {
		app.badRequest(w, r, fmt.Errorf("%w: %q", err, req.Mode))
		return
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	swatches, err := app.CollectionRepo.GetColors()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// the mode is stored only once the collection is saved in that order
	sorted := chromatic.SortBy(mode, swatches)
	if err := app.CollectionRepo.SaveColors(sorted); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if err := app.CollectionRepo.SaveSortMode(mode); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.Logger.Info("sort mode changed", "mode", mode)
	writeJSON(w, http.StatusOK, collectionResponse{SortMode: mode, Colors: sorted})
}

type sortColorsRequest struct {
	Mode   string          `json:"mode"`
	Colors []models.Swatch `json:"colors"`
}

// POST /v1/colors/sort
func (app *Application) sortColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}

	req := &sortColorsRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	mode, err := models.ParseSortMode(req.Mode)
	if err != nil {
		app.badRequest(w, r, fmt.Errorf("%w: %q", err, req.Mode))
		return
	}

	writeJSON(w, http.StatusOK, collectionResponse{
		SortMode: mode,
		Colors:   chromatic.SortBy(mode, lo.Ternary(req.Colors == nil, []models.Swatch{}, req.Colors)),
	})
}
