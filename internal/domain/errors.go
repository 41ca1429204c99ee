package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSpecialToken signals a vocabulary without one of the required special tokens.
	ErrMissingSpecialToken = errors.New("missing special token")
	// ErrDuplicateToken signals a vocabulary entry listed more than once.
	ErrDuplicateToken = errors.New("duplicate vocabulary entry")
	// ErrInconsistentCorpus signals a corpus bundle whose tables disagree with each other.
	ErrInconsistentCorpus = errors.New("inconsistent corpus")
	// ErrUnsupportedFormat signals an unknown bundle encoding or compression.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrInvalidDocument signals a malformed document.
	ErrInvalidDocument = errors.New("invalid document")
)

// MissingSpecialTokenError wraps ErrMissingSpecialToken with the token that was not found.
type MissingSpecialTokenError struct {
	Token string
}

func (e *MissingSpecialTokenError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingSpecialToken.Error(), e.Token)
}

func (e *MissingSpecialTokenError) Unwrap() error { return ErrMissingSpecialToken }

// NewMissingSpecialToken creates a missing special token error.
func NewMissingSpecialToken(token string) error {
	return &MissingSpecialTokenError{Token: token}
}
