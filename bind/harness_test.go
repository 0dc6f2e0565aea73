package bind

import "testing"

// testCase is one bind scenario; run builds the form and checks the bound
// value or the stage error.
type testCase struct {
	name string
	run  func(t *testing.T)
}

// runTestCases runs each scenario as a subtest; a case without run is skipped.
func runTestCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.run == nil {
				t.Skip("no-op test case")
				return
			}
			tc.run(t)
		})
	}
}
