package api

import (
	stderrors "errors"
	"net/http"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Debug("client error: %v", appErr)
	}

	writeJSON(w, r, appErr.Status, map[string]errorBody{
		"error": {Code: appErr.Code, Message: appErr.Message},
	})
}
