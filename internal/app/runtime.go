package app

import (
	"os"
	"sync"
	"sync/atomic"
)

const testModeEnv = "REMCALC_TEST_MODE"

var (
	testMode     atomic.Bool
	testModeOnce sync.Once
)

// InTestMode reports whether the process should skip runtime side
// effects such as binding the listen socket. Test binaries set
// REMCALC_TEST_MODE through the root testing package.
func InTestMode() bool {
	testModeOnce.Do(func() {
		testMode.Store(os.Getenv(testModeEnv) == "1")
	})
	return testMode.Load()
}
