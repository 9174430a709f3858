package calculation

import "time"

// nowFunc stamps ScenarioComparison.GeneratedAt (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests). nil restores time.Now.
func SetNowFunc(f func() time.Time) {
	if f == nil {
		f = time.Now
	}
	nowFunc = f
}
