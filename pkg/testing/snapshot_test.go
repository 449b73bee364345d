package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/testing/internal/testbed"
)

func TestCaptureSnapshot_RenderTree(t *testing.T) {
	tester := NewRenderTesterWithT(t)
	tester.PumpRoot(testbed.NewLayoutBox(200, 100, graphics.RGB(255, 0, 0)))

	snap := tester.CaptureSnapshot()
	root := snap.RenderTree
	if root == nil {
		t.Fatal("expected render tree root")
	}
	if root.ID != "LayoutBox#0" || root.Type != "LayoutBox" {
		t.Errorf("root = %s/%s, want LayoutBox#0/LayoutBox", root.ID, root.Type)
	}
	if root.Size != [2]float64{200, 100} {
		t.Errorf("size = %v, want [200 100]", root.Size)
	}
	if root.Properties["color"] != "0xFFFF0000" {
		t.Errorf("color prop = %v", root.Properties["color"])
	}
	if len(snap.DisplayOps) == 0 {
		t.Error("expected display ops from the last frame")
	}
}

func TestCaptureSnapshot_NoRoot(t *testing.T) {
	tester := NewRenderTesterWithT(t)
	if snap := tester.CaptureSnapshot(); snap.RenderTree != nil {
		t.Error("expected empty snapshot without a root")
	}
}

func TestSnapshot_Diff(t *testing.T) {
	tester := NewRenderTesterWithT(t)
	tester.PumpRoot(testbed.NewLayoutBox(50, 50, graphics.RGB(255, 0, 0)))
	a := tester.CaptureSnapshot()
	b := tester.CaptureSnapshot()
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}

	tester.PumpRoot(testbed.NewLayoutBox(100, 50, graphics.RGB(0, 255, 0)))
	c := tester.CaptureSnapshot()
	diff := a.Diff(c)
	if diff == "" {
		t.Fatal("expected diff for different snapshots")
	}
	if !strings.HasPrefix(diff, "--- expected\n+++ actual\n") {
		t.Errorf("unexpected diff header:\n%s", diff)
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv("DRIFT_UPDATE_SNAPSHOTS", "")
	tester := NewRenderTesterWithT(t)
	tester.PumpRoot(testbed.NewLayoutBox(80, 40, graphics.ColorBlue))
	snap := tester.CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "testdata", "box.snapshot.json")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}
	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv("DRIFT_UPDATE_SNAPSHOTS", "")
	tester := NewRenderTesterWithT(t)
	tester.PumpRoot(testbed.NewLayoutBox(50, 50, 0))
	snap := tester.CaptureSnapshot()

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, filepath.Join(t.TempDir(), "missing.json"))

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv("DRIFT_UPDATE_SNAPSHOTS", "")
	tester := NewRenderTesterWithT(t)
	tester.PumpRoot(testbed.NewLayoutBox(50, 50, graphics.RGB(255, 0, 0)))
	first := tester.CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "snap.json")
	if err := first.UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	tester.PumpRoot(testbed.NewLayoutBox(999, 999, graphics.RGB(0, 0, 255)))
	second := tester.CaptureSnapshot()

	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	tester := NewRenderTesterWithT(t)
	tester.PumpRoot(testbed.NewLayoutBox(60, 30, 0))
	snap := tester.CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "update.snapshot.json")
	t.Setenv("DRIFT_UPDATE_SNAPSHOTS", "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

func TestDisplayOpString(t *testing.T) {
	op := DisplayOp{Op: "drawCircle", Params: sortedMap("radius", 2.5, "cx", 1.0)}
	if got, want := op.String(), "drawCircle(cx=1 radius=2.5)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
