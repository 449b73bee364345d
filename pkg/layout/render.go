// Package layout defines the render-object contract: box constraints, the
// attach and detach lifecycle, and the pipeline owner that batches layout
// and paint requests.
package layout

import "github.com/go-drift/clockface/pkg/graphics"

// RenderObject handles layout and painting, and follows the attach/detach
// lifecycle of the pipeline that hosts it.
type RenderObject interface {
	Layout(constraints Constraints)
	Size() graphics.Size
	Paint(ctx *PaintContext)
	MarkNeedsLayout()
	MarkNeedsPaint()
	Attach(owner *PipelineOwner)
	Detach()
}

// RenderBox is a RenderObject with box layout.
type RenderBox interface {
	RenderObject
}

// RenderBoxBase provides base behavior for render boxes.
//
// Concrete render objects embed RenderBoxBase, call SetSelf with themselves,
// and implement PerformLayout and Paint. They may also implement
//
//	DidAttach()  // called after the object joins a pipeline
//	WillDetach() // called before the object leaves it
//
// to start and stop work that must only run while the object is on screen.
type RenderBoxBase struct {
	size        graphics.Size
	owner       *PipelineOwner
	self        RenderObject
	attached    bool
	needsLayout bool
	needsPaint  bool
	constraints Constraints
}

// Size returns the current size of the render box.
func (r *RenderBoxBase) Size() graphics.Size {
	return r.size
}

// SetSize updates the render box size.
// A changed size marks paint dirty.
func (r *RenderBoxBase) SetSize(size graphics.Size) {
	if r.size == size {
		return
	}
	r.size = size
	r.MarkNeedsPaint()
}

// MarkNeedsLayout marks this render box as needing layout and schedules it
// with the owner.
func (r *RenderBoxBase) MarkNeedsLayout() {
	if r.needsLayout {
		return
	}
	r.needsLayout = true

	if r.owner != nil && r.self != nil {
		r.owner.ScheduleLayout(r.self)
	}
}

// MarkNeedsPaint marks this render box as needing paint.
//
// Unlike MarkNeedsLayout there is no early return when needsPaint is already
// set: SetSelf pre-sets the flag without scheduling, and SchedulePaint
// deduplicates.
func (r *RenderBoxBase) MarkNeedsPaint() {
	r.needsPaint = true

	if r.owner != nil && r.self != nil {
		r.owner.SchedulePaint(r.self)
	}
}

// SetSelf registers the concrete render object for scheduling and hooks.
func (r *RenderBoxBase) SetSelf(self RenderObject) {
	r.self = self
	r.needsLayout = true // New render objects always need initial layout
	r.needsPaint = true  // New render objects always need initial paint
}

// Self returns the concrete render object registered via SetSelf.
func (r *RenderBoxBase) Self() RenderObject {
	return r.self
}

// Owner returns the pipeline owner while attached, or nil.
func (r *RenderBoxBase) Owner() *PipelineOwner {
	return r.owner
}

// Attached reports whether the render box is part of a pipeline.
func (r *RenderBoxBase) Attached() bool {
	return r.attached
}

// Attach connects the render box to owner, schedules any pending work, and
// then calls DidAttach on the concrete object.
func (r *RenderBoxBase) Attach(owner *PipelineOwner) {
	if owner == nil {
		return
	}
	if r.attached {
		if r.owner == owner {
			return
		}
		r.Detach()
	}
	r.owner = owner
	r.attached = true

	if r.self != nil {
		if r.needsLayout {
			owner.ScheduleLayout(r.self)
		}
		if r.needsPaint {
			owner.SchedulePaint(r.self)
		}
	}

	if hook, ok := r.self.(interface{ DidAttach() }); ok {
		hook.DidAttach()
	}
}

// Detach calls WillDetach on the concrete object and disconnects from the
// owner. Detaching a detached box does nothing.
func (r *RenderBoxBase) Detach() {
	if !r.attached {
		return
	}
	if hook, ok := r.self.(interface{ WillDetach() }); ok {
		hook.WillDetach()
	}
	r.attached = false
	r.owner = nil
}

// NeedsLayout returns true if this render box needs layout.
func (r *RenderBoxBase) NeedsLayout() bool {
	return r.needsLayout
}

// NeedsPaint returns true if this render box needs painting.
func (r *RenderBoxBase) NeedsPaint() bool {
	return r.needsPaint
}

// ClearNeedsPaint marks this render object as painted.
func (r *RenderBoxBase) ClearNeedsPaint() {
	r.needsPaint = false
}

// Constraints returns the last received constraints.
func (r *RenderBoxBase) Constraints() Constraints {
	return r.constraints
}

// Layout stores the constraints and delegates to PerformLayout.
//
// Layout is skipped when the box is clean and the constraints are unchanged,
// so laying out the same box repeatedly is cheap and free of side effects.
func (r *RenderBoxBase) Layout(constraints Constraints) {
	if !r.needsLayout && r.constraints == constraints {
		return
	}
	r.constraints = constraints
	r.needsLayout = false

	if performer, ok := r.self.(interface{ PerformLayout() }); ok {
		performer.PerformLayout()
	}
}
