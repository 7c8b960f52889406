package wizard

// StepStatus describes where a wizard step sits relative to the current one.
type StepStatus int

const (
	StepPending StepStatus = iota
	StepCompleted
	StepActive
)

// Step is one entry of the booking progress bar.
type Step struct {
	Number int
	Name   string
	Status StepStatus
}

// CurrentStep is the position of "Select Skip" in the booking flow.
const CurrentStep = 3

var stepNames = []string{
	"Postcode",
	"Waste Type",
	"Select Skip",
	"Permit Check",
	"Choose Date",
	"Payment",
}

// Steps returns the booking flow with every step before CurrentStep completed.
func Steps() []Step {
	steps := make([]Step, len(stepNames))
	for i, name := range stepNames {
		number := i + 1
		status := StepPending
		switch {
		case number < CurrentStep:
			status = StepCompleted
		case number == CurrentStep:
			status = StepActive
		}
		steps[i] = Step{Number: number, Name: name, Status: status}
	}
	return steps
}

// PreviousStep is the step Back returns to.
func PreviousStep() Step {
	return Steps()[CurrentStep-2]
}

// NextStep is the step Continue hands off to.
func NextStep() Step {
	return Steps()[CurrentStep]
}
