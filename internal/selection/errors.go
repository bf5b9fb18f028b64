package selection

import "fmt"

// SyntaxError reports a selection token the grammar could not accept.
//
// It is a local, recoverable error: the caller reports it and prompts again,
// never aborting the selection session.
type SyntaxError struct {
	// Token is the offending input, verbatim.
	Token string

	// Reason describes why the token was rejected.
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("selection: invalid token %q: %s", e.Token, e.Reason)
}

// syntaxErrorf builds a SyntaxError for the given token.
func syntaxErrorf(token, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Token:  token,
		Reason: fmt.Sprintf(format, args...),
	}
}
