package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/luciasjperez85-svg/markersinorder/models"
)

func handleCors(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Headers", "Access-Control-Allow-Credentials, Access-Control-Allow-Origin, Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		h.ServeHTTP(w, r)
	}
}

var errNoToken = errors.New("no access token found")
var errOperatorDisabled = errors.New("operator password is not configured")

// tokenFromRequest reads the access token from the cookie, falling back to
// an Authorization: Bearer header.
func tokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(models.JWT.ACCESS_COOKIE_NAME); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		return strings.TrimSpace(token), nil
	}
	return "", errNoToken
}

// authorizeOperator checks the request carries a valid operator token. With
// no password hash configured, dev mode lets every request through.
func (app *Application) authorizeOperator(r *http.Request) error {
	if app.Config.AdminPasswordHash == "" {
		if app.Config.DevMode {
			return nil
		}
		return errOperatorDisabled
	}

	token, err := tokenFromRequest(r)
	if err != nil {
		return err
	}

	_, err = models.ValidateJWTToken(token, app.Config.JwtSecret)
	return err
}

// requireOperator rejects requests without operator credentials
func (app *Application) requireOperator(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := app.authorizeOperator(r); err != nil {
			app.invalidAuthorization(w, r, err)
			return
		}
		h.ServeHTTP(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (app *Application) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		app.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
