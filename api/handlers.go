package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/luciasjperez85-svg/markersinorder/calibration"
	"github.com/luciasjperez85-svg/markersinorder/chromatic"
	"github.com/luciasjperez85-svg/markersinorder/colorspace"
	"github.com/luciasjperez85-svg/markersinorder/models"
)

// GET /
func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		app.notFound(w, r, fmt.Errorf("no route for %s", r.URL.Path))
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Markers In Order API")
}

// POST /v1/auth/login
func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}

	creds := &models.Credentials{}
	if err := json.NewDecoder(r.Body).Decode(creds); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if app.Config.AdminPasswordHash == "" {
		app.invalidCredentials(w, r, errOperatorDisabled)
		return
	}

	if err := models.CheckPassword(app.Config.AdminPasswordHash, creds.Password); err != nil {
		app.invalidCredentials(w, r, err)
		return
	}

	ttl := time.Second * time.Duration(app.Config.JwtAccessDuration)
	token, err := models.NewOperatorToken(models.OperatorSubject, app.Config.JwtSecret, ttl, app.clock())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     models.JWT.ACCESS_COOKIE_NAME,
		Value:    token.Token,
		HttpOnly: true,
		Secure:   !app.Config.DevMode,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  token.Expiry,
	})

	app.Logger.Info("operator logged in", "expiry", token.Expiry)
	writeJSON(w, http.StatusOK, token)
}

type convertRequest struct {
	Hex string `json:"hex"`
}

// POST /v1/convert
func (app *Application) convertColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}

	req := &convertRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	resp, err := chromatic.Describe(req.Hex)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type calibrationRequest struct {
	Black *colorspace.RGB `json:"black"`
	White *colorspace.RGB `json:"white"`
}

var errChannelRange = errors.New("rgb channels must be between 0 and 255")

func validRGB(rgb colorspace.RGB) bool {
	for _, channel := range []int{rgb.R, rgb.G, rgb.B} {
		if channel < 0 || channel > 255 {
			return false
		}
	}
	return true
}

// POST /v1/calibration
func (app *Application) computeCalibration(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}

	req := &calibrationRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if req.Black == nil || req.White == nil {
		app.badRequest(w, r, errors.New("both black and white samples are required"))
		return
	}
	if !validRGB(*req.Black) || !validRGB(*req.White) {
		app.badRequest(w, r, errChannelRange)
		return
	}

	writeJSON(w, http.StatusOK, calibration.Compute(*req.Black, *req.White))
}

type applyCalibrationRequest struct {
	Matrix *calibration.Matrix `json:"matrix"`
	RGB    *colorspace.RGB     `json:"rgb"`
	Hex    string              `json:"hex"`
}

type applyCalibrationResponse struct {
	RGB *colorspace.RGB `json:"rgb,omitempty"`
	Hex string          `json:"hex,omitempty"`
}

// POST /v1/calibration/apply
func (app *Application) applyCalibration(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}

	req := &applyCalibrationRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	switch {
	case req.RGB != nil:
		if !validRGB(*req.RGB) {
			app.badRequest(w, r, errChannelRange)
			return
		}
		corrected := req.Matrix.Apply(*req.RGB)
		writeJSON(w, http.StatusOK, applyCalibrationResponse{RGB: &corrected})
	case req.Hex != "":
		corrected, err := req.Matrix.ApplyHex(req.Hex)
		if err != nil {
			app.badRequest(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, applyCalibrationResponse{Hex: corrected})
	default:
		app.badRequest(w, r, errors.New("either rgb or hex is required"))
	}
}
