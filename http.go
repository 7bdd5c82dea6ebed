package tossup

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type apiErrorResponse struct {
	Error string `json:"error"`
}

// HandyRespWriter wraps a ResponseWriter with JSON helpers that log their own
// failures.
type HandyRespWriter struct {
	logger *zap.Logger
	http.ResponseWriter
}

func NewHandyRespWriter(w http.ResponseWriter, logger *zap.Logger) (h HandyRespWriter) {
	h.ResponseWriter = w
	h.logger = logger
	return
}

// JSON writes v with statusCode, falling back to 200 for unknown codes.
func (rw *HandyRespWriter) JSON(v interface{}, statusCode int) {
	if http.StatusText(statusCode) == "" {
		statusCode = http.StatusOK
	}
	if v == nil {
		rw.WriteHeader(statusCode)
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		rw.logger.Warn("error occurred marshaling JSON", zap.Error(err))
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(statusCode)
	if _, err := rw.Write(body); err != nil {
		rw.logger.Warn("error occurred writing response body", zap.Error(err))
	}
}

// Error reports err to the client with statusCode.
func (rw *HandyRespWriter) Error(err error, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		rw.logger.Warn("internal error while processing the request", zap.Error(err))
	}
	rw.JSON(apiErrorResponse{Error: err.Error()}, statusCode)
}

// JSONFunc calls fn and writes its result. An error from fn becomes a 500.
func (rw *HandyRespWriter) JSONFunc(fn func() (v interface{}, statusCode int, err error)) {
	v, statusCode, err := fn()
	if err != nil {
		rw.Error(err, http.StatusInternalServerError)
		return
	}
	rw.JSON(v, statusCode)
}
