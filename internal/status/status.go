package status

// Status is the visual lifecycle state of the image widget.
type Status int

const (
	Empty Status = iota
	Uploading
	Filled
)

// All lists every status in display order.
var All = []Status{Empty, Uploading, Filled}

func (s Status) String() string {
	switch s {
	case Uploading:
		return "loading"
	case Filled:
		return "filled"
	default:
		return "empty"
	}
}

// Event drives a transition of the Machine.
type Event int

const (
	// Begin: a file pick, URL embed or catalog selection started, or
	// persisted source data was found on mount.
	Begin Event = iota
	// Ready: the mounted media element reported a successful load.
	Ready
	// Clear: explicit clear action by the user.
	Clear
	// Fail: the upload collaborator reported a failure.
	Fail
)

func (e Event) String() string {
	switch e {
	case Begin:
		return "begin"
	case Ready:
		return "ready"
	case Clear:
		return "clear"
	case Fail:
		return "fail"
	}
	return "unknown"
}

// transitions maps (from, event) to the next status. Pairs missing from the
// table are ignored.
var transitions = map[Status]map[Event]Status{
	Empty: {
		Begin: Uploading,
	},
	Uploading: {
		Ready: Filled,
		Clear: Empty,
		Fail:  Empty,
	},
	Filled: {
		Begin: Uploading,
		Clear: Empty,
		Fail:  Empty,
	},
}

// Next returns the status reached from s on e and whether the transition
// is valid.
func Next(s Status, e Event) (Status, bool) {
	to, ok := transitions[s][e]
	if !ok {
		return s, false
	}
	return to, true
}

// Machine holds the current status. The zero value is Empty.
type Machine struct {
	current Status
}

// NewMachine returns a machine in the initial state for a widget mounted
// with or without persisted media.
func NewMachine(hasSource bool) *Machine {
	m := &Machine{}
	if hasSource {
		m.current = Uploading
	}
	return m
}

// Current returns the active status.
func (m *Machine) Current() Status {
	return m.current
}

// Fire applies e. Invalid transitions are a no-op and report false.
func (m *Machine) Fire(e Event) bool {
	to, ok := Next(m.current, e)
	if !ok {
		return false
	}
	m.current = to
	return true
}

// Flags returns one boolean per status in All order; exactly one is true.
func (m *Machine) Flags() map[Status]bool {
	flags := make(map[Status]bool, len(All))
	for _, s := range All {
		flags[s] = s == m.current
	}
	return flags
}

// Is reports whether s is the active status.
func (m *Machine) Is(s Status) bool {
	return m.current == s
}
