package weather

// Kind identifies one entry of the closed failure taxonomy. The HTTP layer
// maps each kind to a user-facing page; nothing in this package retries.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindAuth           Kind = "auth"
	KindRateLimited    Kind = "rate_limited"
	KindBadRequest     Kind = "bad_request"
	KindIncompleteData Kind = "incomplete_data"
	KindTimeout        Kind = "timeout"
	KindNetwork        Kind = "network"
	KindGeneric        Kind = "generic"
)

// Error is the tagged failure value returned by every resolver and fetcher
// operation. It is constructed where a provider response is deemed unusable
// and propagated unchanged to the boundary.
type Error struct {
	Kind       Kind
	HTTPCode   int      // upstream status; 0 when no status applies
	Parameters []string // offending parameter names, bad_request only
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds a taxonomy error. Pass code 0 for failures that never
// reached an HTTP status (network, timeout).
func NewError(kind Kind, code int, message string) *Error {
	return &Error{Kind: kind, HTTPCode: code, Message: message}
}
