package web

import (
	"net/http"

	"shiftpay/internal/errors"
	"shiftpay/internal/logging"
	"shiftpay/internal/validation"
)

// statusFor maps a service error to an HTTP status
func statusFor(err error) int {
	switch {
	case validation.IsValidationError(err):
		return http.StatusBadRequest
	case errors.IsErrorType(err, errors.ErrorTypeValidation), errors.IsErrorType(err, errors.ErrorTypeInvalidInput):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// userMessage returns the text shown to the user for err
func userMessage(err error) string {
	if ve, ok := err.(*validation.ValidationError); ok {
		return ve.GetUserFriendlyMessage()
	}
	if statusFor(err) == http.StatusInternalServerError && !errors.IsAppError(err) {
		return "An unexpected error occurred. Please try again."
	}
	return errors.GetUserMessage(err)
}

func (s *Server) logError(r *http.Request, err error) {
	if errors.ShouldLogError(err) && !validation.IsValidationError(err) {
		logging.Errorf("%s %s request_id=%s code=%s: %v", r.Method, r.URL.Path, RequestID(r.Context()), errors.GetErrorCode(err), err)
	}
}

// fail renders the error page with the status matching err
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logError(r, err)
	status := statusFor(err)
	s.render(w, r, status, "error.html", pageData{
		Title: http.StatusText(status),
		Error: userMessage(err),
		Data:  status,
	})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "error.html", pageData{
		Title: http.StatusText(http.StatusNotFound),
		Error: "The requested entry does not exist.",
		Data:  http.StatusNotFound,
	})
}
