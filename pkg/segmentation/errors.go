package segmentation

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConnectivity = errors.New("grid connectivity must be 4 or 8")
	ErrInvalidGrid         = errors.New("grid dimensions must be positive")
	ErrMalformedProblem    = errors.New("malformed problem file")
)

// ArgumentShapeError reports input arrays whose lengths or dimensions do not agree. it is
// returned before any graph is built.
type ArgumentShapeError struct {
	Argument string
	Msg      string
}

func (e *ArgumentShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Argument, e.Msg)
}
