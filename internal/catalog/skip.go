package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// maxRoadYards is the largest skip a customer may place on a public road.
const maxRoadYards = 8

// ErrInvalidCatalog is returned when a catalog breaks the unique id invariant.
var ErrInvalidCatalog = errors.New("invalid catalog")

// SkipOption is one selectable skip size in the catalog.
type SkipOption struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Size        string   `json:"size"`
	Price       int      `json:"price"`
	HirePeriod  string   `json:"hirePeriod"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Popular     bool     `json:"popular,omitempty"`
	Capacity    string   `json:"capacity"`
	Suitable    []string `json:"suitable"`
	Gradient    string   `json:"gradient"`
}

// Yards returns the leading integer of the size descriptor ("6 Yards" -> 6),
// or 0 when the descriptor does not start with a number.
func (s SkipOption) Yards() int {
	value := strings.TrimSpace(s.Size)
	end := strings.IndexFunc(value, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(value)
	}
	if end == 0 {
		return 0
	}
	yards, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0
	}
	return yards
}

// RoadPlacementAllowed reports whether the skip may sit on a public road.
func (s SkipOption) RoadPlacementAllowed() bool {
	yards := s.Yards()
	return yards > 0 && yards <= maxRoadYards
}

// Validate checks that every option has a non-empty id and that ids are unique.
func Validate(options []SkipOption) error {
	seen := make(map[string]struct{}, len(options))
	for i, option := range options {
		id := strings.TrimSpace(option.ID)
		if id == "" {
			return fmt.Errorf("%w: entry %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Find returns the option with the given id.
func Find(options []SkipOption, id string) (SkipOption, bool) {
	for _, option := range options {
		if option.ID == id {
			return option, true
		}
	}
	return SkipOption{}, false
}

// Clone returns a deep copy so callers cannot mutate a loaded catalog.
func Clone(options []SkipOption) []SkipOption {
	if options == nil {
		return nil
	}
	out := make([]SkipOption, len(options))
	for i, option := range options {
		option.Suitable = append([]string(nil), option.Suitable...)
		out[i] = option
	}
	return out
}
