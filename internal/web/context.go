package web

import (
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/hrconsole/internal/core"
	"github.com/JonMunkholm/hrconsole/internal/logging"
)

// requestOwner returns the preference owner the owner middleware (or an
// authenticated API client) attached to the request.
func requestOwner(r *http.Request) string {
	return core.OwnerFromContext(r.Context())
}

// requestLogger returns the request logger with the table key attached.
func requestLogger(r *http.Request, tableKey string) *slog.Logger {
	if tableKey == "" {
		return logging.FromContext(r.Context())
	}
	return logging.WithFields(r.Context(), "table", tableKey)
}
