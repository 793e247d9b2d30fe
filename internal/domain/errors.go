package domain

import "errors"

// Error kinds. Services and repositories wrap one of these sentinels so
// callers can branch with errors.Is while the wrapped message is shown to
// the user verbatim.
var (
	// ErrValidation marks blank or malformed input, always raised before
	// any store access.
	ErrValidation = errors.New("geçersiz girdi")

	// ErrNotFound marks a lookup or mutation that matched no row.
	ErrNotFound = errors.New("kayıt bulunamadı")

	// ErrAuth marks bad credentials, a disabled account, or a missing
	// password hash.
	ErrAuth = errors.New("kimlik doğrulama hatası")

	// ErrConflict marks a duplicate email within a tenant during
	// registration.
	ErrConflict = errors.New("çakışma")

	// ErrStore marks a connectivity, driver, or transaction failure.
	ErrStore = errors.New("veritabanı hatası")
)

// E wraps kind with a user-facing message.
func E(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Wrap attaches both a kind and an underlying cause to a user-facing
// message. errors.Is matches the kind and the cause.
func Wrap(kind error, msg string, cause error) error {
	return &kindError{kind: kind, msg: msg, cause: cause}
}

type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *kindError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}
