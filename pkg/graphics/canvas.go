// Package graphics provides colors, geometry, text layout, and the canvases
// that record or rasterize drawing commands.
package graphics

// Canvas records or renders drawing commands.
//
// Implementations in this module: the recording canvas behind
// [PictureRecorder], [ImageCanvas] for PNG output, and the terminal and
// window hosts under cmd/clockface.
type Canvas interface {
	// Save pushes the current transform state.
	Save()

	// Restore pops the most recent transform state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end Offset, paint Paint)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center Offset, radius float64, paint Paint)

	// DrawText draws a pre-shaped text layout with its top-left corner at the
	// given position.
	DrawText(layout *TextLayout, position Offset)

	// Size returns the size of the canvas in pixels.
	Size() Size
}
