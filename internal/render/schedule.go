package render

// InputSource marks a blur step that samples the pass input (the geometry or
// bloom texture) rather than one of the ping-pong targets.
const InputSource = -1

// BlurStep is one separable blur draw.
type BlurStep struct {
	Target     int  // ping-pong target written, 0 or 1
	Source     int  // ping-pong target read, or InputSource
	Horizontal bool // blur direction
}

// BlurSchedule expands iterations of horizontal+vertical blur into draws.
// Step 0 reads the input; each later step reads what the previous one wrote.
func BlurSchedule(iterations int) []BlurStep {
	if iterations <= 0 {
		return nil
	}
	steps := make([]BlurStep, 2*iterations)
	for pass := range steps {
		pingpong := pass % 2
		src := 1 - pingpong
		if pass == 0 {
			src = InputSource
		}
		steps[pass] = BlurStep{Target: pingpong, Source: src, Horizontal: pingpong == 0}
	}
	return steps
}

// Output returns the ping-pong target holding the result of steps, or
// InputSource when there are no steps.
func Output(steps []BlurStep) int {
	if len(steps) == 0 {
		return InputSource
	}
	return steps[len(steps)-1].Target
}
