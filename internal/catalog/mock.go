package catalog

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultMockDelay mirrors the latency of the hosted booking API.
const DefaultMockDelay = time.Second

// ErrSimulatedFailure is returned by MockSource while failure injection is active.
var ErrSimulatedFailure = errors.New("simulated catalog outage")

var referenceSkips = []SkipOption{
	{
		ID:          "4-yard",
		Name:        "4 Yard Skip",
		Size:        "4 Yards",
		Price:       227,
		HirePeriod:  "7 day hire",
		Description: "Perfect for small home projects and garden clearance",
		Image:       "/images/skip-bin-professional.png",
		Capacity:    "30-40 bin bags",
		Suitable:    []string{"Garden waste", "Small renovations"},
		Gradient:    "from-emerald-400 via-teal-500 to-cyan-600",
	},
	{
		ID:          "6-yard",
		Name:        "6 Yard Skip",
		Size:        "6 Yards",
		Price:       300,
		HirePeriod:  "14 day hire",
		Description: "Ideal for medium-sized renovations and clear-outs",
		Image:       "/images/skip-bin-photo.png",
		Popular:     true,
		Capacity:    "50-60 bin bags",
		Suitable:    []string{"Kitchen renovations", "Bathroom refits"},
		Gradient:    "from-orange-400 via-amber-500 to-yellow-500",
	},
	{
		ID:          "8-yard",
		Name:        "8 Yard Skip",
		Size:        "8 Yards",
		Price:       325,
		HirePeriod:  "7 day hire",
		Description: "Great for larger projects and construction waste",
		Image:       "/images/skip-bin-professional.png",
		Capacity:    "70-80 bin bags",
		Suitable:    []string{"Construction waste", "Large renovations"},
		Gradient:    "from-purple-400 via-violet-500 to-indigo-600",
	},
	{
		ID:          "10-yard",
		Name:        "10 Yard Skip",
		Size:        "10 Yards",
		Price:       375,
		HirePeriod:  "7 day hire",
		Description: "Suitable for major home renovations",
		Image:       "/images/skip-bin-photo.png",
		Capacity:    "90-100 bin bags",
		Suitable:    []string{"Major renovations", "House clearance"},
		Gradient:    "from-rose-400 via-pink-500 to-fuchsia-600",
	},
	{
		ID:          "12-yard",
		Name:        "12 Yard Skip",
		Size:        "12 Yards",
		Price:       425,
		HirePeriod:  "14 day hire",
		Description: "Perfect for commercial projects and large clear-outs",
		Image:       "/images/skip-bin-professional.png",
		Capacity:    "110-120 bin bags",
		Suitable:    []string{"Commercial projects", "Large construction"},
		Gradient:    "from-blue-400 via-sky-500 to-cyan-600",
	},
	{
		ID:          "14-yard",
		Name:        "14 Yard Skip",
		Size:        "14 Yards",
		Price:       475,
		HirePeriod:  "14 day hire",
		Description: "Our largest skip for major construction projects",
		Image:       "/images/skip-bin-photo.png",
		Capacity:    "130-140 bin bags",
		Suitable:    []string{"Major construction", "Industrial projects"},
		Gradient:    "from-red-400 via-orange-500 to-amber-600",
	},
	{
		ID:          "16-yard",
		Name:        "16 Yard Skip",
		Size:        "16 Yards",
		Price:       525,
		HirePeriod:  "14 day hire",
		Description: "Extra large skip for major commercial projects",
		Image:       "/images/skip-bin-professional.png",
		Capacity:    "150-160 bin bags",
		Suitable:    []string{"Major commercial", "Industrial demolition"},
		Gradient:    "from-green-400 via-emerald-500 to-teal-600",
	},
	{
		ID:          "18-yard",
		Name:        "18 Yard Skip",
		Size:        "18 Yards",
		Price:       575,
		HirePeriod:  "21 day hire",
		Description: "Our premium skip for the largest projects",
		Image:       "/images/skip-bin-photo.png",
		Capacity:    "170-180 bin bags",
		Suitable:    []string{"Demolition projects", "Large commercial"},
		Gradient:    "from-slate-400 via-gray-500 to-zinc-600",
	},
}

// ReferenceCatalog returns a fresh copy of the built-in skip range.
func ReferenceCatalog() []SkipOption {
	return Clone(referenceSkips)
}

// MockSource serves ReferenceCatalog after an artificial delay. The first
// FailFirst fetches fail with ErrSimulatedFailure.
type MockSource struct {
	Delay     time.Duration
	FailFirst int

	mu    sync.Mutex
	calls int
}

// NewMockSource returns a MockSource with the given delay and failure budget.
func NewMockSource(delay time.Duration, failFirst int) *MockSource {
	return &MockSource{Delay: delay, FailFirst: failFirst}
}

func (s *MockSource) Name() string { return "mock" }

// Fetch waits for Delay (or ctx cancellation) and returns the reference catalog.
func (s *MockSource) Fetch(ctx context.Context) ([]SkipOption, error) {
	s.mu.Lock()
	s.calls++
	call := s.calls
	s.mu.Unlock()

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	if call <= s.FailFirst {
		return nil, ErrSimulatedFailure
	}
	return ReferenceCatalog(), nil
}

// Calls reports how many fetches have been attempted.
func (s *MockSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
