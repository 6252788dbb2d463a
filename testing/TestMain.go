package testing

import (
	"os"
	stdtesting "testing"
)

// Importing this package marks the process as a test run before any
// composition-root code executes.
func init() {
	_ = os.Setenv("REMCALC_TEST_MODE", "1")
}

func TestMain(m *stdtesting.M) {
	os.Exit(m.Run())
}
