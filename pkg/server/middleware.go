package server

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/getzep/contactner/config"
	"github.com/getzep/contactner/pkg/server/handlertools"
)

const versionHeader = "X-Contactner-Version"

// SendVersion is a middleware that adds the current version to the response
func SendVersion(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get(versionHeader) == "" {
			w.Header().Add(versionHeader, config.VersionString)
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}

var errInternal = errors.New("internal server error")

// Recoverer turns a panicking handler into a JSON 500 response.
func Recoverer(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			log.Errorf("Panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rvr, debug.Stack())
			handlertools.RenderError(w, errInternal, http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}
