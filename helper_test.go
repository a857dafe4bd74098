package capgains

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// moneyComparer compares amounts by value, 10 and 10.00 are equal.
var moneyComparer = cmp.Comparer(func(a, b Money) bool { return a.Equal(b) })

// taxes is a helper for test to create the expected results from const.
func taxes(values ...float64) []Result {
	results := make([]Result, len(values))
	for i, v := range values {
		results[i] = Result{Tax: M(v)}
	}
	return results
}

// assertResults fails the test if got and want differ.
func assertResults(t *testing.T, got, want []Result) {
	t.Helper()
	if diff := cmp.Diff(want, got, moneyComparer); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}
