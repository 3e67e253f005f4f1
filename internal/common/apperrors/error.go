// Package apperrors provides the application error type used across the
// service. It extends the standard error interface with error chaining,
// HTTP status codes, and message expansion, so that handlers can map a
// domain error straight to a client response.
package apperrors

// Error is the interface implemented by all application errors. Methods
// return Error so declarations can be chained.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error      // derives a new error using current as template
	Msg(msg string) Error      // new error with message, wrapping the original
	Err(err ...error) Error    // attaches additional errors to current error
	SetExpandError(bool) Error // controls whether ErrorAll expands wrapped errors
	SetStatusCode(int) Error   // sets the HTTP status code for the error
	StatusCode() int           // returns the current status code
	ErrorAll() string          // full message including wrapped errors
}
