package tt

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
)

// TestingT is the subset of testing.TB the assertions need.
type TestingT interface {
	assert.TestingT
	Helper()
}

// AssertSequence asserts that actual lists the same items as expected, in the same order.
// On mismatch the failure message is a unified diff, one item per line.
func AssertSequence(t TestingT, expected, actual []string, msgAndArgs ...any) bool {
	t.Helper()

	if assert.ObjectsAreEqual(expected, actual) {
		return true
	}
	return assert.Fail(t, "sequence mismatch:\n"+SequenceDiff(expected, actual), msgAndArgs...)
}

// SequenceDiff renders a unified diff between two sequences. It is empty when they match.
func SequenceDiff(expected, actual []string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        lines(expected),
		B:        lines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

func lines(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.TrimRight(item, "\n") + "\n"
	}
	return out
}
