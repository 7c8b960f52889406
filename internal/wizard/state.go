// Package wizard holds the state machine of the "Select Skip" booking step:
// catalog load phase, single selection and pagination, driven by intents
// through Reduce.
package wizard

import (
	"errors"

	"github.com/csheth/skiphire/internal/catalog"
)

// Phase is the catalog load phase. Exactly one is active at a time.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseLoaded
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

var errUnknownFetchFailure = errors.New("catalog fetch failed")

// State is the full step state. Fields are unexported so that only Reduce can
// produce transitions; the catalog is only populated in PhaseLoaded and the
// error only in PhaseError.
type State struct {
	phase      Phase
	err        error
	options    []catalog.SkipOption
	selection  Selection
	pagination Pagination
	gen        int
}

// Start returns the initial state (loading, no selection, page 1) and the
// fetch effect that begins the first load.
func Start(pageSize int) (State, []Effect) {
	s := State{
		phase:      PhaseLoading,
		pagination: NewPagination(pageSize),
		gen:        1,
	}
	return s, []Effect{FetchCatalog{Gen: s.gen}}
}

func (s State) Phase() Phase { return s.phase }

// Err is the load failure while in PhaseError.
func (s State) Err() error { return s.err }

// Generation identifies the fetch the state is waiting for.
func (s State) Generation() int { return s.gen }

// Catalog returns a copy of the loaded catalog.
func (s State) Catalog() []catalog.SkipOption { return catalog.Clone(s.options) }

// Len is the number of catalog entries.
func (s State) Len() int { return len(s.options) }

func (s State) Page() int { return s.pagination.Clamp(len(s.options)).Page() }

func (s State) PageSize() int { return s.pagination.PageSize() }

func (s State) TotalPages() int { return s.pagination.TotalPages(len(s.options)) }

// Window returns the half-open bounds of the visible page within the catalog.
func (s State) Window() (int, int) { return s.pagination.Bounds(len(s.options)) }

// Visible returns a copy of the entries on the current page.
func (s State) Visible() []catalog.SkipOption {
	return catalog.Clone(Visible(s.pagination, s.options))
}

// SelectedID returns the selected id.
func (s State) SelectedID() (string, bool) { return s.selection.Current() }

// Selected returns the selected catalog entry.
func (s State) Selected() (catalog.SkipOption, bool) {
	id, ok := s.selection.Current()
	if !ok {
		return catalog.SkipOption{}, false
	}
	return catalog.Find(s.options, id)
}

// CanContinue reports whether the Continue action is available.
func (s State) CanContinue() bool {
	_, ok := s.Selected()
	return s.phase == PhaseLoaded && ok
}

// Reduce applies intent to s and returns the next state together with the
// side effects the caller must perform. Intents that do not apply to the
// current phase return s unchanged and no effects.
func Reduce(s State, intent Intent) (State, []Effect) {
	switch in := intent.(type) {
	case CatalogLoaded:
		if s.phase != PhaseLoading || in.Gen != s.gen {
			return s, nil
		}
		s.phase = PhaseLoaded
		s.err = nil
		s.options = catalog.Clone(in.Options)
		s.selection = s.selection.Reconcile(s.options)
		s.pagination = s.pagination.Clamp(len(s.options))
		return s, nil
	case CatalogFailed:
		if s.phase != PhaseLoading || in.Gen != s.gen {
			return s, nil
		}
		s.phase = PhaseError
		s.err = in.Err
		if s.err == nil {
			s.err = errUnknownFetchFailure
		}
		return s, nil
	case Retry:
		if s.phase != PhaseError {
			return s, nil
		}
		s.phase = PhaseLoading
		s.err = nil
		s.gen++
		return s, []Effect{FetchCatalog{Gen: s.gen}}
	case SelectItem:
		if s.phase != PhaseLoaded {
			return s, nil
		}
		s.selection, _ = s.selection.Select(s.options, in.ID)
		return s, nil
	case GoToPage:
		return s.movePage(func(p Pagination, n int) (Pagination, bool) { return p.GoTo(in.Page, n) })
	case NextPage:
		return s.movePage(Pagination.Next)
	case PrevPage:
		return s.movePage(Pagination.Prev)
	case Continue:
		option, ok := s.Selected()
		if s.phase != PhaseLoaded || !ok {
			return s, nil
		}
		return s, []Effect{HandOff{Action: ActionContinue, Option: &option}}
	case Back:
		handOff := HandOff{Action: ActionBack}
		if option, ok := s.Selected(); ok {
			handOff.Option = &option
		}
		return s, []Effect{handOff}
	default:
		return s, nil
	}
}

func (s State) movePage(move func(Pagination, int) (Pagination, bool)) (State, []Effect) {
	if s.phase != PhaseLoaded {
		return s, nil
	}
	next, changed := move(s.pagination, len(s.options))
	if !changed {
		return s, nil
	}
	s.pagination = next
	return s, []Effect{ScrollTop{}}
}
