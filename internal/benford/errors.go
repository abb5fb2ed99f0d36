package benford

import (
	"errors"
	"fmt"
)

const (
	insufficientDataMessageConstant  = "insufficient data for Benford analysis"
	insufficientDataTemplateConstant = "%s: no usable transactions among %d provided (%d discarded)"
)

// ErrInsufficientData matches any InsufficientDataError through errors.Is.
var ErrInsufficientData = errors.New(insufficientDataMessageConstant)

// InsufficientDataError reports that no transaction had a definable leading digit.
type InsufficientDataError struct {
	Provided  int
	Discarded int
}

// Error describes the empty sample.
func (insufficientDataError *InsufficientDataError) Error() string {
	return fmt.Sprintf(insufficientDataTemplateConstant, insufficientDataMessageConstant, insufficientDataError.Provided, insufficientDataError.Discarded)
}

// Is reports whether target is ErrInsufficientData.
func (insufficientDataError *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}
