package main_test

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain fails the build-wide test run if any test leaks a goroutine.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreCurrent())
}
