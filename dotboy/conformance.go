package dotboy

import (
	"bytes"
	"errors"
)

// TestOutcome is the verdict of a conformance run.
type TestOutcome int

const (
	// TestInconclusive means the frame budget ran out before a verdict.
	TestInconclusive TestOutcome = iota
	TestPassed
	TestFailed
)

func (o TestOutcome) String() string {
	switch o {
	case TestPassed:
		return "passed"
	case TestFailed:
		return "failed"
	default:
		return "inconclusive"
	}
}

// ErrNoVerdict reports a conformance run that exhausted its frame budget
// without the ROM printing a verdict.
var ErrNoVerdict = errors.New("no pass/fail verdict within the frame budget")

var (
	passedMarker = []byte("Passed")
	failedMarker = []byte("Failed")
)

// RunConformanceTest runs the loaded ROM headless for at most maxFrames,
// watching the serial channel for the literal "Passed" or "Failed" text
// that conformance ROMs emit one character at a time. It returns the
// verdict and the full serial transcript.
func (e *Emulator) RunConformanceTest(maxFrames int) (TestOutcome, string, error) {
	var transcript bytes.Buffer
	e.SetSerialObserver(func(b byte) { transcript.WriteByte(b) })
	defer e.SetSerialObserver(nil)

	for frame := 0; frame < maxFrames; frame++ {
		if err := e.RunUntilFrame(); err != nil {
			return TestInconclusive, transcript.String(), err
		}

		if bytes.Contains(transcript.Bytes(), passedMarker) {
			return TestPassed, transcript.String(), nil
		}
		if bytes.Contains(transcript.Bytes(), failedMarker) {
			return TestFailed, transcript.String(), nil
		}
	}

	return TestInconclusive, transcript.String(), ErrNoVerdict
}
