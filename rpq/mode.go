package rpq

import (
	"fmt"
	"strings"
)

// Mode selects the search strategy of a session.
type Mode int

const (
	// ModeClassic is the exhaustive search.
	ModeClassic Mode = iota
	// ModeTopK stops each run after K final nodes and keeps the K cheapest answers.
	ModeTopK
	// ModeTopKUnoptimized runs exhaustively and keeps the K cheapest answers.
	ModeTopKUnoptimized
	// ModeThreshold stops each run past the bound and keeps answers within it.
	ModeThreshold
	// ModeThresholdUnoptimized runs exhaustively and keeps answers within the bound.
	ModeThresholdUnoptimized
	// ModeLargestWeight runs exhaustively and reports the largest answer cost.
	ModeLargestWeight
)

var modeNames = [...]string{
	ModeClassic:              "classic",
	ModeTopK:                 "topK",
	ModeTopKUnoptimized:      "topKUO",
	ModeThreshold:            "threshold",
	ModeThresholdUnoptimized: "thresholdUO",
	ModeLargestWeight:        "thresholdLW",
}

// String returns the mode's command name.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps a command name (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(modeNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
