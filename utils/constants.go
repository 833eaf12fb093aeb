package utils

// Error codes attached to JSON error responses so that clients can branch
// without parsing the human readable message.
const (
	ErrorTokenAuthFail = 20001
	ErrorInvalidInput  = 20002
	ErrorNotFound      = 20003
	ErrorForbidden     = 20004
	ErrorConstraint    = 20005
	ErrorInternal      = 20006
)
