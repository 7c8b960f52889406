package tui

import "github.com/csheth/skiphire/internal/catalog"

const heroTagline = "Professional Skip Hire Service"

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	minViewportHeight         = 6
	defaultWindowWidth        = 100
	defaultWindowHeight       = 40
	compactStepsWidth         = 96 // narrower terminals get the "Step 3 of 6" progress line
	cardGap                   = 2
	minCardWidth              = 34
)

var includedItems = []string{
	"Free delivery and collection",
	"Responsible waste disposal",
	"Flexible hire periods",
	"Professional service guarantee",
	"Environmental compliance",
	"24/7 customer support",
}

var roadRestrictions = []string{
	"Skips larger than 8 yards",
	"Placement without permits",
	"Blocking traffic or access",
	"Near schools or hospitals",
}

var roadAlternatives = []string{
	"Private driveways",
	"Front gardens (with access)",
	"Private car parks",
	"Council permit areas",
}

const permitNote = "We can help you obtain the necessary council permits. Additional charges may apply. " +
	"Contact us for more information about permit requirements in your area."

type catalogResultMsg struct {
	gen     int
	options []catalog.SkipOption
	err     error
}
