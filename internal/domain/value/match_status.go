package value

import "fmt"

// MatchStatus moves forward only: matched -> contacted | failed.
type MatchStatus string

const (
	MatchStatusMatched   MatchStatus = "matched"
	MatchStatusContacted MatchStatus = "contacted"
	MatchStatusFailed    MatchStatus = "failed"
)

func ParseMatchStatus(s string) (MatchStatus, error) {
	switch st := MatchStatus(s); st {
	case MatchStatusMatched, MatchStatusContacted, MatchStatusFailed:
		return st, nil
	default:
		return "", fmt.Errorf("unknown match status %q", s)
	}
}

func (s MatchStatus) IsTerminal() bool {
	return s == MatchStatusContacted || s == MatchStatusFailed
}

func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	return s == MatchStatusMatched && next.IsTerminal()
}

func (s MatchStatus) String() string {
	return string(s)
}
