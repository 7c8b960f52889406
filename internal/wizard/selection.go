package wizard

import "github.com/csheth/skiphire/internal/catalog"

// Selection holds at most one skip id. There is no deselect; selecting a
// different id replaces the previous one.
type Selection struct {
	id  string
	set bool
}

// Current returns the selected id.
func (s Selection) Current() (string, bool) {
	return s.id, s.set
}

// Select sets the selection to id when it exists in options. Unknown ids
// leave the selection untouched and report false.
func (s Selection) Select(options []catalog.SkipOption, id string) (Selection, bool) {
	if _, ok := catalog.Find(options, id); !ok {
		return s, false
	}
	return Selection{id: id, set: true}, true
}

// Reconcile clears the selection when it no longer refers to an entry of options.
func (s Selection) Reconcile(options []catalog.SkipOption) Selection {
	if !s.set {
		return s
	}
	if _, ok := catalog.Find(options, s.id); !ok {
		return Selection{}
	}
	return s
}
