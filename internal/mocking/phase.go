package mocking

// Phase is the stage of a test run; it gates how unstubbed calls are answered
type Phase int32

// Phases, in the only order a Session visits them
const (
	Configuring Phase = iota
	Executing
	Verifying
)

func (p Phase) String() string {
	switch p {
	case Configuring:
		return "configuring"
	case Executing:
		return "executing"
	case Verifying:
		return "verifying"
	default:
		return "unknown"
	}
}
