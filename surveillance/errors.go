package surveillance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrDoubleOccupancy     = errors.New("placement loaded while occupied")
	ErrDoubleLoad          = errors.New("container system loaded twice")
	ErrUnloadedExtract     = errors.New("extract of a container system that is not loaded")
	ErrDoubleExtract       = errors.New("container system extracted twice")
	ErrCrossVesselMismatch = errors.New("load crosses reactor vessels")
)

// IntegrityError reports the first inconsistency met while scanning the
// timeline. The stored record is corrupt, not the request that read it.
type IntegrityError struct {
	Violation         error
	PlacementID       int
	ContainerSystemID int
	LoadIDs           []int
	ExtractID         int
	Detail            string
}

func (e *IntegrityError) Error() string {
	var b strings.Builder
	b.WriteString(e.Violation.Error())
	b.WriteString(": container_system=")
	b.WriteString(strconv.Itoa(e.ContainerSystemID))
	if e.PlacementID != 0 {
		b.WriteString(" placement=")
		b.WriteString(strconv.Itoa(e.PlacementID))
	}
	if len(e.LoadIDs) > 0 {
		fmt.Fprintf(&b, " loads=%v", e.LoadIDs)
	}
	if e.ExtractID != 0 {
		b.WriteString(" extract=")
		b.WriteString(strconv.Itoa(e.ExtractID))
	}
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	return b.String()
}

func (e *IntegrityError) Unwrap() error {
	return e.Violation
}

// Kind returns a short machine name for logs.
func (e *IntegrityError) Kind() string {
	switch e.Violation {
	case ErrDoubleOccupancy:
		return "double_occupancy"
	case ErrDoubleLoad:
		return "double_load"
	case ErrUnloadedExtract:
		return "unloaded_extract"
	case ErrDoubleExtract:
		return "double_extract"
	case ErrCrossVesselMismatch:
		return "cross_vessel_mismatch"
	}
	return "unknown"
}

// AsIntegrityError unwraps err into an *IntegrityError when it is one.
func AsIntegrityError(err error) (*IntegrityError, bool) {
	var ie *IntegrityError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

func doubleOccupancy(placementID, systemID, existingLoad, newLoad int) error {
	return &IntegrityError{
		Violation:         ErrDoubleOccupancy,
		PlacementID:       placementID,
		ContainerSystemID: systemID,
		LoadIDs:           []int{existingLoad, newLoad},
	}
}

func doubleLoad(systemID, placementID, firstLoad, secondLoad int) error {
	return &IntegrityError{
		Violation:         ErrDoubleLoad,
		PlacementID:       placementID,
		ContainerSystemID: systemID,
		LoadIDs:           []int{firstLoad, secondLoad},
	}
}

func unloadedExtract(systemID, extractID int, detail string) error {
	return &IntegrityError{
		Violation:         ErrUnloadedExtract,
		ContainerSystemID: systemID,
		ExtractID:         extractID,
		Detail:            detail,
	}
}

func doubleExtract(systemID, placementID, extractID int) error {
	return &IntegrityError{
		Violation:         ErrDoubleExtract,
		PlacementID:       placementID,
		ContainerSystemID: systemID,
		ExtractID:         extractID,
	}
}

func crossVessel(systemID, placementID, loadID int, detail string) error {
	return &IntegrityError{
		Violation:         ErrCrossVesselMismatch,
		PlacementID:       placementID,
		ContainerSystemID: systemID,
		LoadIDs:           []int{loadID},
		Detail:            detail,
	}
}
