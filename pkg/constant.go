package pkg

// enum of segment (which side of the min cut a node ends up on)
type Segment uint8

const (
	SOURCE Segment = iota
	SINK
)

// DEFAULT_SEGMENT is the segment reported for nodes that are in neither search tree when the
// solve ends. either side gives a minimum cut for them.
const DEFAULT_SEGMENT = SOURCE

func (s Segment) String() string {
	switch s {
	case SOURCE:
		return "source"
	case SINK:
		return "sink"
	default:
		return "unknown"
	}
}

// Label returns the binary label used by the host wrapper: 1 for SINK, 0 otherwise.
func (s Segment) Label() uint8 {
	if s == SINK {
		return 1
	}
	return 0
}

const (
	INFINITE_DIST = 1 << 30

	DEFAULT_BATCH_WORKERS = 4
	DEFAULT_MAX_NODES     = 1 << 24
)

// DEBUG turns on the flow conservation check after every solve.
const DEBUG = false
