package layout

import (
	"testing"

	"github.com/go-drift/clockface/pkg/graphics"
)

type testRenderBox struct {
	RenderBoxBase
	layoutCalls int
	paintCalls  int
	attachCalls int
	detachCalls int
}

func newTestRenderBox() *testRenderBox {
	r := &testRenderBox{}
	r.SetSelf(r)
	return r
}

func (r *testRenderBox) PerformLayout() {
	r.layoutCalls++
	r.SetSize(r.Constraints().Constrain(graphics.Size{Width: 10, Height: 10}))
}

func (r *testRenderBox) Paint(ctx *PaintContext) {
	r.paintCalls++
}

func (r *testRenderBox) DidAttach()  { r.attachCalls++ }
func (r *testRenderBox) WillDetach() { r.detachCalls++ }

func TestAttachDetachHooks(t *testing.T) {
	owner := &PipelineOwner{}
	box := newTestRenderBox()

	box.Attach(owner)
	box.Attach(owner)
	if box.attachCalls != 1 {
		t.Errorf("DidAttach calls = %d, want 1", box.attachCalls)
	}
	if !box.Attached() || box.Owner() != owner {
		t.Error("expected box to be attached to owner")
	}

	box.Detach()
	box.Detach()
	if box.detachCalls != 1 {
		t.Errorf("WillDetach calls = %d, want 1", box.detachCalls)
	}
	if box.Attached() || box.Owner() != nil {
		t.Error("expected box to be detached")
	}
}

func TestAttachSchedulesInitialFrame(t *testing.T) {
	requests := 0
	owner := &PipelineOwner{OnNeedVisualUpdate: func() { requests++ }}
	box := newTestRenderBox()
	box.Attach(owner)

	if !owner.NeedsLayout() || !owner.NeedsPaint() {
		t.Error("new root should schedule layout and paint")
	}
	if requests == 0 {
		t.Error("expected a visual update request")
	}
}

func TestLayoutSkipsWhenClean(t *testing.T) {
	owner := &PipelineOwner{}
	box := newTestRenderBox()
	box.Attach(owner)

	c := Loose(graphics.Size{Width: 50, Height: 50})
	owner.FlushLayoutForRoot(box, c)
	owner.FlushLayoutForRoot(box, c)
	if box.layoutCalls != 1 {
		t.Errorf("layout calls = %d, want 1", box.layoutCalls)
	}

	owner.FlushLayoutForRoot(box, Loose(graphics.Size{Width: 5, Height: 5}))
	if box.layoutCalls != 2 {
		t.Errorf("layout calls after new constraints = %d, want 2", box.layoutCalls)
	}
	if box.Size() != (graphics.Size{Width: 5, Height: 5}) {
		t.Errorf("size = %v, want 5x5", box.Size())
	}

	box.MarkNeedsLayout()
	owner.FlushLayoutForRoot(box, Loose(graphics.Size{Width: 5, Height: 5}))
	if box.layoutCalls != 3 {
		t.Errorf("layout calls after MarkNeedsLayout = %d, want 3", box.layoutCalls)
	}
}

func TestMarkNeedsPaintSchedulesOnce(t *testing.T) {
	requests := 0
	owner := &PipelineOwner{OnNeedVisualUpdate: func() { requests++ }}
	box := newTestRenderBox()
	box.Attach(owner)
	owner.FlushPaint()
	box.ClearNeedsPaint()
	requests = 0

	box.MarkNeedsPaint()
	box.MarkNeedsPaint()
	if requests != 1 {
		t.Errorf("visual update requests = %d, want 1", requests)
	}
	dirty := owner.FlushPaint()
	if len(dirty) != 1 || dirty[0] != RenderObject(box) {
		t.Errorf("FlushPaint = %v, want the box", dirty)
	}
	if owner.NeedsPaint() {
		t.Error("paint queue should be empty after FlushPaint")
	}
}

func TestFlushPaintSkipsCleanObjects(t *testing.T) {
	owner := &PipelineOwner{}
	box := newTestRenderBox()
	box.Attach(owner)
	box.ClearNeedsPaint()

	if dirty := owner.FlushPaint(); len(dirty) != 0 {
		t.Errorf("FlushPaint = %v, want nothing for a painted box", dirty)
	}
}

func TestDetachedBoxDoesNotSchedule(t *testing.T) {
	requests := 0
	owner := &PipelineOwner{OnNeedVisualUpdate: func() { requests++ }}
	box := newTestRenderBox()
	box.Attach(owner)
	box.Detach()
	owner.FlushLayoutForRoot(box, Loose(graphics.Size{Width: 10, Height: 10}))
	owner.FlushPaint()
	requests = 0

	box.MarkNeedsLayout()
	box.MarkNeedsPaint()
	if requests != 0 {
		t.Errorf("detached box requested %d updates", requests)
	}
}
