package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	errs "github.com/matzehuels/glyphgrid/pkg/errors"
)

// StatusClientClosedRequest is reported when the client cancelled the
// request before a response was ready.
const StatusClientClosedRequest = 499

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// StatusFor maps an error to an HTTP status code using its error code.
func StatusFor(err error) int {
	if errors.Is(err, context.Canceled) {
		return StatusClientClosedRequest
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errs.ErrCodeInvalidDocument, errs.ErrCodeOutOfRange:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeNotFound:
		return http.StatusNotFound
	case errs.ErrCodeNetwork:
		return http.StatusBadGateway
	case errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	reqID := middleware.GetReqID(r.Context())
	if status == StatusClientClosedRequest {
		s.logger.Debug("client went away", "request_id", reqID)
		w.WriteHeader(status)
		return
	}
	code := errs.GetCode(err)
	msg := errs.UserMessage(err)

	if code == "" || code == errs.ErrCodeInternal {
		s.logger.Error("request failed", "request_id", reqID, "error", err)
		code, msg = errs.ErrCodeInternal, "internal error"
	} else {
		s.logger.Warn("request rejected", "request_id", reqID, "status", status, "error", err)
	}

	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      string(code),
		RequestID: reqID,
	})
}
