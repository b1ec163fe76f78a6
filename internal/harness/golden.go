package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Transcript renders a result as plain text, one block per step:
//
//	# scenario-name
//	[1] create_contact
//	  $1
//	[2] delete_contacts
//	  error NOT_FOUND
func Transcript(name string, result *Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", name)
	for i, s := range result.Steps {
		fmt.Fprintf(&buf, "[%d] %s\n", i+1, s.Op)
		for _, line := range s.Output {
			fmt.Fprintf(&buf, "  %s\n", line)
		}
		if s.Error != "" {
			fmt.Fprintf(&buf, "  error %s\n", s.Error)
		}
	}
	return buf.Bytes()
}

// RunWithGolden executes a scenario, fails the test on any unmet
// expectation, and compares the transcript against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) *Result {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("Run(%s) failed: %v", scenario.Name, err)
	}
	for _, e := range result.Errors {
		t.Error(e)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, Transcript(scenario.Name, result))
	return result
}
