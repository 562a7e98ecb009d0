package internal

// AppError is the error shape surfaced in API responses. Recoverable domain
// conditions (dangling links, clamped amounts) are handled in place and
// never become AppErrors; only storage and request failures do.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
