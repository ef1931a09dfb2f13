// Package test contains helper functions for the package tests of this module.
package test

import (
	"fmt"
	"testing"
)

// ExpectEquality tests for equality between a value and an expected value.
// The optional tags are prepended to the failure message.
func ExpectEquality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) bool {
	t.Helper()
	if v != expectedValue {
		t.Errorf("%sequality test of type %T failed: '%v' does not equal '%v'", id(tags...), v, v, expectedValue)
		return false
	}
	return true
}

// DemandEquality is like ExpectEquality but a failure stops the test. Use it
// when later checks depend on the value being correct.
func DemandEquality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) {
	t.Helper()
	if v != expectedValue {
		t.Fatalf("%sequality test of type %T failed: '%v' does not equal '%v'", id(tags...), v, v, expectedValue)
	}
}

// ExpectSuccess tests v for a success condition suitable for its type:
//
//	bool  -> v == true
//	error -> v == nil
//	nil   -> always a success
func ExpectSuccess(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if !expect(t, v, tags...) {
		t.Errorf("%sa success value is expected for type %T (%v)", id(tags...), v, v)
		return false
	}
	return true
}

// ExpectFailure tests v for a failure condition suitable for its type:
//
//	bool  -> v == false
//	error -> v != nil
//	nil   -> always a failure
func ExpectFailure(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if expect(t, v, tags...) {
		t.Errorf("%sa failure value is expected for type %T", id(tags...), v)
		return false
	}
	return true
}

// DemandSuccess is like ExpectSuccess but a failure stops the test.
func DemandSuccess(t *testing.T, v any, tags ...any) {
	t.Helper()
	if !expect(t, v, tags...) {
		t.Fatalf("%sa success value is demanded for type %T (%v)", id(tags...), v, v)
	}
}

// DemandFailure is like ExpectFailure but a failure stops the test.
func DemandFailure(t *testing.T, v any, tags ...any) {
	t.Helper()
	if expect(t, v, tags...) {
		t.Fatalf("%sa failure value is demanded for type %T", id(tags...), v)
	}
}

// expect returns true if v is a success value for its type.
func expect(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return v
	case error:
		return v == nil
	default:
		t.Fatalf("%sunsupported type (%T) for expectation testing", id(tags...), v)
	}
	return false
}

func id(tags ...any) string {
	if len(tags) == 0 {
		return ""
	}
	s := ""
	for _, tag := range tags {
		s += fmt.Sprintf("%v: ", tag)
	}
	return s
}
