package api

import (
	"net/http"
	"regexp"
	"strings"
)

var localhostPattern = regexp.MustCompile(`^localhost:\d+$`)

func cleanOrigin(origin string) string {
	cleanedOrigin := strings.TrimPrefix(origin, "https://")
	cleanedOrigin = strings.TrimPrefix(cleanedOrigin, "http://")
	if idx := strings.Index(cleanedOrigin, "/"); idx != -1 {
		cleanedOrigin = cleanedOrigin[:idx]
	}
	return cleanedOrigin
}

func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	cleanedRequest := cleanOrigin(origin)

	// Allow localhost for development
	if localhostPattern.MatchString(cleanedRequest) {
		return true
	}

	for _, allowed := range allowedOrigins {
		if cleanOrigin(allowed) == cleanedRequest {
			return true
		}
	}

	return false
}

func wrapMuxWithCorsAndOrigins(mux *http.ServeMux, allowedOrigins []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin == "" {
			referer := r.Header.Get("Referer")
			if referer != "" {
				origin = referer
			}
		}

		if origin == "" || isAllowedOrigin(origin, allowedOrigins) {
			handleCors(mux.ServeHTTP)(w, r)
			return
		}

		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("origin not allowed: " + cleanOrigin(origin)))
	})
}

func (app *Application) BuildRoutes(mux *http.ServeMux) http.Handler {
	finalMux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("/", app.home)
	mux.HandleFunc("/v1/auth/login", app.login)
	mux.HandleFunc("/v1/colors/export", app.exportColors)
	mux.HandleFunc("/v1/colors/sort", app.sortColors)
	mux.HandleFunc("/v1/sort-mode", app.sortMode)
	mux.HandleFunc("/v1/harmony", app.findHarmony)
	mux.HandleFunc("/v1/palettes/suggestions", app.suggestPalettes)
	mux.HandleFunc("/v1/convert", app.convertColor)
	mux.HandleFunc("/v1/calibration", app.computeCalibration)
	mux.HandleFunc("/v1/calibration/apply", app.applyCalibration)

	// Reads are public, writes need the operator
	mux.HandleFunc("/v1/colors", app.colors)

	// Operator endpoints
	mux.HandleFunc("/v1/colors/clear", app.requireOperator(app.clearColors))
	mux.HandleFunc("/v1/colors/{id}", app.requireOperator(app.deleteColor))

	finalMux.Handle("/", app.logRequests(wrapMuxWithCorsAndOrigins(mux, app.Config.AllowedOrigins)))

	return finalMux
}
