package auth

import "errors"

var (
	// ErrUnauthenticated means no usable credential was presented.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the credential is valid but its role is not accepted.
	ErrForbidden = errors.New("forbidden")
)

const (
	ReasonNoCredential   = "no credential presented"
	ReasonInvalidToken   = "invalid or expired credential"
	ReasonUnknownRole    = "unrecognized role"
	ReasonRoleNotAllowed = "role not permitted for this operation"
)

// Rejection is returned by Authorize. Kind is ErrUnauthenticated or
// ErrForbidden; Reason is safe to show to the caller.
type Rejection struct {
	Kind   error
	Reason string
}

func (r *Rejection) Error() string {
	return r.Kind.Error() + ": " + r.Reason
}

func (r *Rejection) Unwrap() error {
	return r.Kind
}

func unauthenticated(reason string) *Rejection {
	return &Rejection{Kind: ErrUnauthenticated, Reason: reason}
}

func forbidden(reason string) *Rejection {
	return &Rejection{Kind: ErrForbidden, Reason: reason}
}
