package bt

import "fmt"

// Status represents the execution result of a single node tick.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusRunning
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	case StatusRunning:
		return "Running"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// IsTerminal reports whether s ends the current run of a node.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailure
}

func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusSuccess, StatusFailure, StatusRunning:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("bt: invalid status %d", int(s))
	}
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Success":
		*s = StatusSuccess
	case "Failure":
		*s = StatusFailure
	case "Running":
		*s = StatusRunning
	default:
		return fmt.Errorf("bt: unknown status %q", text)
	}
	return nil
}
