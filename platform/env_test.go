package platform_test

import (
	"os"
	"testing"
)

// unsetenv removes key for the duration of the test. t.Setenv must have been called for key first,
// so that the original value gets restored.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	if err := os.Unsetenv(key); err != nil {
		t.Fatal(err)
	}
}
