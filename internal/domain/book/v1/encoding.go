package bookv1

import (
	"fmt"

	"github.com/muhammadchandra19/market-depth/pkg/errors"
)

// Action and Side travel as single characters both in the CSV feed and in
// JSON stream payloads, matching the upstream feed encoding.

// String returns the wire character for the action.
func (a Action) String() string {
	return string(rune(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	return []byte{byte(a)}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	if len(text) != 1 || !IsValidAction(Action(text[0])) {
		return errors.NewErrorDetails(
			fmt.Sprintf("unknown action %q", string(text)),
			errors.UnknownActionError,
			"action",
		)
	}
	*a = Action(text[0])
	return nil
}

// String returns the wire character for the side.
func (s Side) String() string {
	return string(rune(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte{byte(s)}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	if len(text) != 1 || !IsValidSide(Side(text[0])) {
		return errors.NewErrorDetails(
			fmt.Sprintf("invalid side %q", string(text)),
			errors.InvalidRecordError,
			"side",
		)
	}
	*s = Side(text[0])
	return nil
}
