// Package harness runs scripted contact book scenarios end to end.
//
// A scenario drives a contacts.Manager over a fresh store and checks each
// step's outcome. Every run also produces a plain text transcript that is
// compared against a golden file.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario exercises"
//	steps:
//	  - op: create_book
//	    book: friends
//	  - op: create_contact
//	    book: friends
//	    names: ["Jane Doe"]
//	    expect:
//	      output: ["$1"]
//	  - op: find
//	    book: friends
//	    properties: ["FN:Jane"]
//	    forgive: true
//	    expect:
//	      output: ["$1"]
//	  - op: delete_contacts
//	    uids: ["$2"]
//	    expect:
//	      error: NOT_FOUND
//
// "$n" stands for the n-th generated UID, both in step arguments and in
// expected output. Paths inside the store are shown relative to "<root>".
//
// # Deterministic Testing
//
// The harness uses:
//   - Sequential UIDs (testutil.SequentialUIDs)
//   - A fixed clock starting at testutil.DefaultEpoch
//   - A store in a fresh temporary directory
//
// This ensures identical transcripts across runs.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/orphans.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
