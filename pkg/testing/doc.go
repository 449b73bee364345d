// Package testing provides render testing support for clockface.
//
// # Quick Start
//
// Host a render object in a tester, then drive time with the fake clock:
//
//	func TestClockTicks(t *testing.T) {
//	    tester := drifttest.NewRenderTesterWithT(t)
//	    tester.PumpRoot(widgets.NewClock())
//
//	    before := tester.Frames()
//	    tester.Advance(time.Second)
//	    if tester.Frames() != before+1 {
//	        t.Error("expected one repaint per second")
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare render tree snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/clock.snapshot.json")
//
// Update snapshots with:
//
//	DRIFT_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import drifttest "github.com/go-drift/clockface/pkg/testing"
package testing
