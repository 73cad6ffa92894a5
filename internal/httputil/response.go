package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/odpi/itinfra/internal/errors"
)

// FFDCResponse is embedded in every response body. On failure the exception
// fields describe what went wrong and how to recover.
type FFDCResponse struct {
	RelatedHTTPCode         int                    `json:"relatedHTTPCode"`
	ExceptionKind           string                 `json:"exceptionKind,omitempty"`
	ExceptionErrorMessage   string                 `json:"exceptionErrorMessage,omitempty"`
	ExceptionErrorMessageID string                 `json:"exceptionErrorMessageId,omitempty"`
	ExceptionSystemAction   string                 `json:"exceptionSystemAction,omitempty"`
	ExceptionUserAction     string                 `json:"exceptionUserAction,omitempty"`
	ExceptionProperties     map[string]interface{} `json:"exceptionProperties,omitempty"`
}

// Envelope gives access to the embedded exception fields.
func (r *FFDCResponse) Envelope() *FFDCResponse { return r }

// Failed reports whether the response carries an exception.
func (r *FFDCResponse) Failed() bool { return r.RelatedHTTPCode >= http.StatusBadRequest }

// Failure converts err into exception fields. Unclassified errors are
// reported as internal failures.
func Failure(err error) FFDCResponse {
	se := errors.GetServiceError(err)
	if se == nil {
		se = errors.Internal("unexpected failure", err)
	}
	return FFDCResponse{
		RelatedHTTPCode:         se.HTTPStatus,
		ExceptionKind:           string(se.Kind()),
		ExceptionErrorMessage:   se.Message,
		ExceptionErrorMessageID: se.MessageID,
		ExceptionSystemAction:   se.SystemAction,
		ExceptionUserAction:     se.UserAction,
		ExceptionProperties:     se.Details,
	}
}

// WriteJSON writes data with the given status.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a bare exception envelope for err.
func WriteError(w http.ResponseWriter, err error) {
	resp := Failure(err)
	WriteJSON(w, resp.RelatedHTTPCode, resp)
}
