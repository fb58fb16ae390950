package items

import (
	"errors"
	"fmt"
)

var (
	// ErrMismatchedSeries is returned when the highest and lowest series of a timeseries differ in length
	ErrMismatchedSeries = errors.New("highest and lowest series must have equal length")

	// ErrEmptyTimeseries is returned when a derived view needs at least one observation
	ErrEmptyTimeseries = errors.New("timeseries has no observations")
)

// ErrItemNotInCatalog is returned when a name or id has no catalog entry
type ErrItemNotInCatalog struct {
	Name string
	ID   int
}

func (e *ErrItemNotInCatalog) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("item not in catalog: %q", e.Name)
	}
	return fmt.Sprintf("item not in catalog: id=%d", e.ID)
}

// ErrUnknownEquipmentSet is returned when an equipment set name is not recognised
type ErrUnknownEquipmentSet struct {
	Name    string
	Choices []string
}

func (e *ErrUnknownEquipmentSet) Error() string {
	return fmt.Sprintf("unknown equipment set %q: must be one of %v", e.Name, e.Choices)
}

// ErrInvalidTimestep is returned for timesteps the price feed does not serve
type ErrInvalidTimestep struct {
	Timestep string
}

func (e *ErrInvalidTimestep) Error() string {
	return fmt.Sprintf("invalid timestep %q: must be one of %v", e.Timestep, ValidTimesteps())
}
