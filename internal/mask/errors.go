package mask

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a mask error
type ErrorType int

const (
	// ErrTypeInvalidPattern indicates a mask pattern that cannot be compiled
	ErrTypeInvalidPattern ErrorType = iota
	// ErrTypeInvalidCharacter indicates a rune that cannot be placed at or after the cursor
	ErrTypeInvalidCharacter
	// ErrTypeFieldFull indicates a rune typed into a field that is already at capacity
	ErrTypeFieldFull
	// ErrTypeNoMask indicates a field query made while no mask is installed
	ErrTypeNoMask
)

// Sentinel errors for errors.Is matching against *Error values.
var (
	ErrInvalidPattern   = errors.New("invalid mask pattern")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrFieldFull        = errors.New("field is full")
	ErrNoMask           = errors.New("no mask set")
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeInvalidPattern:
		return "Invalid Pattern"
	case ErrTypeInvalidCharacter:
		return "Invalid Character"
	case ErrTypeFieldFull:
		return "Field Full"
	case ErrTypeNoMask:
		return "No Mask"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

func (et ErrorType) sentinel() error {
	switch et {
	case ErrTypeInvalidPattern:
		return ErrInvalidPattern
	case ErrTypeInvalidCharacter:
		return ErrInvalidCharacter
	case ErrTypeFieldFull:
		return ErrFieldFull
	case ErrTypeNoMask:
		return ErrNoMask
	default:
		return nil
	}
}

// Error describes a rejected keystroke or a misuse of the mask API.
type Error struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Pos     int       // Buffer position involved, -1 when not applicable
	Rune    rune      // Offending rune for keystroke errors, 0 otherwise
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Rune != 0 {
		return fmt.Sprintf("%s: %s (%q at %d)", e.Type, e.Message, e.Rune, e.Pos)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Is reports whether target is the sentinel for this error's type.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Type.sentinel()
}

func invalidCharacter(pos int, r rune) *Error {
	return &Error{
		Type:    ErrTypeInvalidCharacter,
		Message: "character cannot be placed at or after the cursor",
		Pos:     pos,
		Rune:    r,
	}
}

func fieldFull(pos int, r rune) *Error {
	return &Error{
		Type:    ErrTypeFieldFull,
		Message: "field is already full",
		Pos:     pos,
		Rune:    r,
	}
}

func noMask(op string) *Error {
	return &Error{
		Type:    ErrTypeNoMask,
		Message: fmt.Sprintf("a mask must be set before calling %s", op),
		Pos:     -1,
	}
}

// IsKeystrokeError reports whether err is a per-keystroke rejection
// (invalid character or full field) rather than an API misuse.
func IsKeystrokeError(err error) bool {
	return errors.Is(err, ErrInvalidCharacter) || errors.Is(err, ErrFieldFull)
}
