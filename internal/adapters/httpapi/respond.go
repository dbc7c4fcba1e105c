package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"campusevents/internal/domain"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithJSON writes payload as JSON with the given status.
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFor maps an error code to its HTTP status.
func statusFor(code string) int {
	switch code {
	case "event_not_found", "profile_not_found":
		return http.StatusNotFound
	case "not_owner", "not_manager", "profile_incomplete", "permission_denied":
		return http.StatusForbidden
	case "empty_comment", "invalid_input":
		return http.StatusBadRequest
	case "auth_required":
		return http.StatusUnauthorized
	case "repository_failure":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError translates err for the caller's Accept-Language and logs
// server-side failures.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.Code(err)
	status := statusFor(code)

	data := map[string]any{}
	if errors.Is(err, domain.ErrValidation) {
		data["Detail"] = err.Error()
	}
	msg := s.tr.T(r.Header.Get("Accept-Language"), "error_"+code, data)

	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Str("code", code).Str("path", r.URL.Path).Msg("request failed")
	}
	RespondWithJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

// decodeJSON reads the request body into v. Unknown fields are rejected so
// typos surface as validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.Validation("malformed request body: %v", err)
	}
	return nil
}
