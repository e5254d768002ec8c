package datastructure

import "errors"

var (
	ErrCapacityExceeded = errors.New("graph capacity hint exceeded")
	ErrInvalidNode      = errors.New("node index out of range")
	ErrInvalidEdge      = errors.New("invalid edge")
	ErrNegativeCapacity = errors.New("negative capacity")
	ErrGraphSolved      = errors.New("graph is already solved")
)
