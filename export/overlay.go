package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/tableau/model"
)

var (
	overlayBackground = color.RGBA{255, 255, 255, 255}
	columnColor       = color.RGBA{66, 135, 245, 255}  // blue bands
	cellColor         = color.RGBA{46, 160, 67, 255}   // green boxes
	labelColor        = color.RGBA{120, 120, 120, 255} // grey text
)

// RenderOverlay draws one page's share of a table onto a white canvas:
// column boundaries as vertical lines, cell bounding boxes as rectangles,
// and column labels along the top. It is a debugging aid for judging
// calibration and span-to-column assignment.
func RenderOverlay(t *model.Table, page, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{overlayBackground}, image.Point{}, draw.Src)

	for _, col := range t.Columns {
		vline(img, int(col.XMin), 0, height, columnColor)
		vline(img, int(col.XMax), 0, height, columnColor)
		if col.Label != "" {
			drawLabel(img, int(col.XMin)+2, 12, col.Label)
		}
	}

	for _, row := range t.Rows {
		if row.Page != page {
			continue
		}
		for _, cell := range row.Cells {
			if cell.Text == "" {
				continue
			}
			rect(img, cell.BBox, cellColor)
		}
	}

	return img
}

// WriteOverlayPNG renders one page's overlay and encodes it as PNG.
func WriteOverlayPNG(w io.Writer, t *model.Table, page, width, height int) error {
	if err := png.Encode(w, RenderOverlay(t, page, width, height)); err != nil {
		return fmt.Errorf("failed to encode overlay: %w", err)
	}
	return nil
}

// vline draws a 1px vertical line clipped to the image bounds.
func vline(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		if (image.Point{x, y}).In(img.Bounds()) {
			img.SetRGBA(x, y, c)
		}
	}
}

// rect draws the outline of a bounding box.
func rect(img *image.RGBA, b model.BBox, c color.RGBA) {
	x0, y0, x1, y1 := int(b.X0), int(b.Y0), int(b.X1), int(b.Y1)
	for x := x0; x <= x1; x++ {
		setIn(img, x, y0, c)
		setIn(img, x, y1, c)
	}
	for y := y0; y <= y1; y++ {
		setIn(img, x0, y, c)
		setIn(img, x1, y, c)
	}
}

func setIn(img *image.RGBA, x, y int, c color.RGBA) {
	if (image.Point{x, y}).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

// drawLabel renders small text with the fixed 7x13 face.
func drawLabel(img *image.RGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
