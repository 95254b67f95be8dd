package config

import (
	"mime"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal/util"
)

// ConsoleRequestHeader marks writes that cannot carry a JSON body, such as the
// multipart employee import. Browsers only send it after a CORS preflight.
const ConsoleRequestHeader = "X-Console-Request"

// consoleWritesOnly rejects state changing requests from origins outside the
// allowed list, and writes that a browser could send cross-site without a
// preflight: they must be JSON or carry ConsoleRequestHeader.
func consoleWritesOnly(allowedOrigins []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !mutating(r.Method) {
			next.ServeHTTP(w, r)
			return
		}
		contextLogger := log.WithContext(r.Context()).WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		})

		if origin := r.Header.Get("Origin"); origin != "" && !originAllowed(allowedOrigins, origin) {
			contextLogger.WithField("origin", origin).Warn("write from a foreign origin rejected")
			util.WithBodyAndStatus(util.ErrorBody{Error: "Origin not allowed"}, http.StatusForbidden, w)
			return
		}

		if r.Header.Get(ConsoleRequestHeader) == "" && !isJSON(r.Header.Get("Content-Type")) {
			contextLogger.WithField("contentType", r.Header.Get("Content-Type")).Warn("write without a JSON body rejected")
			util.WithBodyAndStatus(util.ErrorBody{Error: "Requests must be sent as application/json"}, http.StatusUnsupportedMediaType, w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

func originAllowed(allowed []string, origin string) bool {
	for _, o := range allowed {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
