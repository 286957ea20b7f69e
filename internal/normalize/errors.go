// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"errors"
	"fmt"
)

// ErrUnknownModifier is returned when a plain grade carries a suffix that is
// not in the modifier table. Defaulting it to zero would skew averages, so
// the document is rejected instead.
var ErrUnknownModifier = errors.New("unknown grade modifier")

// UnknownModifierError reports the cell text and the unrecognised suffix.
type UnknownModifierError struct {
	Text  string
	Token string
}

func (e *UnknownModifierError) Error() string {
	return fmt.Sprintf("%s %q in grade %q", ErrUnknownModifier, e.Token, e.Text)
}

func (e *UnknownModifierError) Unwrap() error { return ErrUnknownModifier }
