package wizard

import "github.com/csheth/skiphire/internal/catalog"

// Intent is a user or system event fed into Reduce.
type Intent interface {
	isIntent()
}

// SelectItem selects the skip with ID.
type SelectItem struct{ ID string }

// GoToPage jumps to Page, clamped into range.
type GoToPage struct{ Page int }

type NextPage struct{}

type PrevPage struct{}

// Retry re-issues the catalog fetch after a failure.
type Retry struct{}

// Continue hands the selection off to the next wizard step.
type Continue struct{}

// Back returns to the previous wizard step.
type Back struct{}

// CatalogLoaded delivers the result of fetch Gen.
type CatalogLoaded struct {
	Gen     int
	Options []catalog.SkipOption
}

// CatalogFailed reports that fetch Gen failed.
type CatalogFailed struct {
	Gen int
	Err error
}

func (SelectItem) isIntent()    {}
func (GoToPage) isIntent()      {}
func (NextPage) isIntent()      {}
func (PrevPage) isIntent()      {}
func (Retry) isIntent()         {}
func (Continue) isIntent()      {}
func (Back) isIntent()          {}
func (CatalogLoaded) isIntent() {}
func (CatalogFailed) isIntent() {}

// Effect is a side effect requested by Reduce.
type Effect interface {
	isEffect()
}

// FetchCatalog asks the caller to start fetch Gen.
type FetchCatalog struct{ Gen int }

// ScrollTop asks the view to reset its scroll position after a page change.
type ScrollTop struct{}

// Action names how the step was left.
type Action string

const (
	ActionContinue Action = "continue"
	ActionBack     Action = "back"
	ActionQuit     Action = "quit"
)

// HandOff ends the step. Option is the selected skip, if any.
type HandOff struct {
	Action Action
	Option *catalog.SkipOption
}

func (FetchCatalog) isEffect() {}
func (ScrollTop) isEffect()    {}
func (HandOff) isEffect()      {}
