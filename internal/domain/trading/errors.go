package trading

import (
	"fmt"
	"strings"
)

// ErrInvalidTransaction represents validation errors for sale transactions
type ErrInvalidTransaction struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ErrInvalidTransaction) Error() string {
	return fmt.Sprintf("invalid transaction: %s - %s (got %v)", e.Field, e.Reason, e.Value)
}

// ErrPriceUnavailable is returned when a required price point has no recorded trade
type ErrPriceUnavailable struct {
	Item string
	Side string // "highest" or "lowest"
}

func (e *ErrPriceUnavailable) Error() string {
	return fmt.Sprintf("price unavailable: %s has no %s price", e.Item, e.Side)
}

// ErrItemNotFound is returned when a name has no entry in a lookup table
type ErrItemNotFound struct {
	Name    string
	Choices []string
}

func (e *ErrItemNotFound) Error() string {
	if len(e.Choices) == 0 {
		return fmt.Sprintf("unable to find %s", e.Name)
	}
	return fmt.Sprintf("unable to find %s: a choice must be taken from [%s]", e.Name, strings.Join(e.Choices, ", "))
}

// ErrIncorrectItemProvided is returned when repair inputs do not match the expected pieces
type ErrIncorrectItemProvided struct {
	Item   string
	Reason string
}

func (e *ErrIncorrectItemProvided) Error() string {
	return fmt.Sprintf("incorrect item provided: %s - %s", e.Item, e.Reason)
}

// ErrInvalidLevel is returned for skill levels outside the supported range
type ErrInvalidLevel struct {
	Level int
}

func (e *ErrInvalidLevel) Error() string {
	return fmt.Sprintf("invalid level %d: must be between %d and %d", e.Level, MinSkillLevel, MaxSkillLevel)
}

// ErrDoseParse is returned when a potion name carries no recognised dose suffix
type ErrDoseParse struct {
	Name string
}

func (e *ErrDoseParse) Error() string {
	return fmt.Sprintf("unable to parse dose from %q: name must end in (1), (2), (3) or (4)", e.Name)
}

// ErrMismatchedInput is returned when paired inputs cannot be matched up
type ErrMismatchedInput struct {
	Reason string
}

func (e *ErrMismatchedInput) Error() string {
	return fmt.Sprintf("mismatched input: %s", e.Reason)
}

// ErrIncomparable is returned when a transaction is compared against another type
type ErrIncomparable struct {
	Type string
}

func (e *ErrIncomparable) Error() string {
	return fmt.Sprintf("cannot compare sale transaction with %s", e.Type)
}
