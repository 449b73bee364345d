package layout

// PipelineOwner tracks render objects that need layout or paint and tells
// the host when a new frame is required.
type PipelineOwner struct {
	dirtyLayout map[RenderObject]struct{}
	dirtyPaint  map[RenderObject]struct{}
	needsLayout bool
	needsPaint  bool

	// OnNeedVisualUpdate is called whenever layout or paint is scheduled.
	// Hosts use it to schedule a frame; it may be called many times per frame.
	OnNeedVisualUpdate func()
}

// ScheduleLayout marks a render object as needing layout.
func (p *PipelineOwner) ScheduleLayout(object RenderObject) {
	if p.dirtyLayout == nil {
		p.dirtyLayout = make(map[RenderObject]struct{})
	}
	if _, exists := p.dirtyLayout[object]; exists {
		return
	}
	p.dirtyLayout[object] = struct{}{}
	p.needsLayout = true
	p.needsPaint = true
	p.requestVisualUpdate()
}

// SchedulePaint marks a render object as needing paint.
func (p *PipelineOwner) SchedulePaint(object RenderObject) {
	if p.dirtyPaint == nil {
		p.dirtyPaint = make(map[RenderObject]struct{})
	}
	if _, exists := p.dirtyPaint[object]; exists {
		return
	}
	p.dirtyPaint[object] = struct{}{}
	p.needsPaint = true
	p.requestVisualUpdate()
}

func (p *PipelineOwner) requestVisualUpdate() {
	if p.OnNeedVisualUpdate != nil {
		p.OnNeedVisualUpdate()
	}
}

// NeedsLayout reports if any render objects need layout.
func (p *PipelineOwner) NeedsLayout() bool {
	return p.needsLayout
}

// NeedsPaint reports if any render objects need paint.
func (p *PipelineOwner) NeedsPaint() bool {
	return p.needsPaint
}

// FlushLayoutForRoot lays out root with constraints and clears the layout
// queue. Root layout is skipped by RenderBoxBase when nothing changed.
func (p *PipelineOwner) FlushLayoutForRoot(root RenderObject, constraints Constraints) {
	if root == nil {
		return
	}
	root.Layout(constraints)
	p.dirtyLayout = nil
	p.needsLayout = false
}

// FlushPaint returns the scheduled objects that still need paint and clears
// the paint queue.
func (p *PipelineOwner) FlushPaint() []RenderObject {
	if !p.needsPaint || len(p.dirtyPaint) == 0 {
		p.dirtyPaint = nil
		p.needsPaint = false
		return nil
	}

	dirty := make([]RenderObject, 0, len(p.dirtyPaint))
	for obj := range p.dirtyPaint {
		if np, ok := obj.(interface{ NeedsPaint() bool }); ok && !np.NeedsPaint() {
			continue
		}
		dirty = append(dirty, obj)
	}

	p.dirtyPaint = nil
	p.needsPaint = false
	return dirty
}
