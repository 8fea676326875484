// Package jsontest compares JSON documents in tests independently of key
// order and whitespace.
package jsontest

import (
	"encoding/json"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// JSONEqual reports whether a and b hold equivalent JSON, by formatting both
// consistently and comparing the results. The formatted documents are
// returned too, for use in failure messages.
func JSONEqual(a, b []byte) (bool, []byte, []byte, error) {
	formattedA, err := Format(a)
	if err != nil {
		return false, nil, nil, err
	}
	formattedB, err := Format(b)
	if err != nil {
		return false, formattedA, nil, err
	}
	return string(formattedA) == string(formattedB), formattedA, formattedB, nil
}

// Format returns a canonical rendering of a JSON document: indented, with
// object keys sorted.
func Format(a []byte) ([]byte, error) {
	var tmpObj any
	if err := json.Unmarshal(a, &tmpObj); err != nil {
		return a, err
	}
	return json.MarshalIndent(tmpObj, "", "  ")
}

// AssertEqual fails the test with a readable diff if expected and actual are
// not equivalent JSON.
func AssertEqual(t *testing.T, expected, actual []byte) bool {
	t.Helper()
	equal, formattedExpected, formattedActual, err := JSONEqual(expected, actual)
	if err != nil {
		t.Errorf("invalid JSON: %v\nexpected:\n%s\nactual:\n%s", err, expected, actual)
		return false
	}
	if !equal {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(formattedExpected), string(formattedActual), false)
		t.Errorf("JSON documents differ:\n%s", dmp.DiffPrettyText(diffs))
		return false
	}
	return true
}
