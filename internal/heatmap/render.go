package heatmap

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/golang/geo/r2"
)

// Grid holds estimator samples taken at cell centers, row-major
type Grid struct {
	Cols        int               `json:"cols"`
	Rows        int               `json:"rows"`
	CellWidth   float64           `json:"cell_width"`
	CellHeight  float64           `json:"cell_height"`
	Intensities []float64         `json:"intensities"`
	Categories  []Category        `json:"categories"`
	Max         float64           `json:"max"`
	Surface     SurfaceDimensions `json:"surface"`
}

// At returns the intensity of cell (col, row)
func (g Grid) At(col, row int) float64 {
	return g.Intensities[row*g.Cols+col]
}

// RenderGrid samples the surface on a cols x rows lattice
func RenderGrid(sources []SourcePoint, surface SurfaceDimensions, cols, rows int) Grid {
	g := Grid{
		Cols:        cols,
		Rows:        rows,
		CellWidth:   surface.Width / float64(cols),
		CellHeight:  surface.Height / float64(rows),
		Intensities: make([]float64, cols*rows),
		Categories:  make([]Category, cols*rows),
		Surface:     surface,
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			center := r2.Point{
				X: (float64(col) + 0.5) * g.CellWidth,
				Y: (float64(row) + 0.5) * g.CellHeight,
			}
			v := EstimateIntensity(center, sources, surface)
			i := row*cols + col
			g.Intensities[i] = v
			g.Categories[i] = IntensityCategory(v)
			if v > g.Max {
				g.Max = v
			}
		}
	}

	return g
}

// RenderImage draws one estimator sample per pixel. Pixels with no source in
// range stay transparent; the rest take the category color with alpha
// proportional to intensity.
func RenderImage(sources []SourcePoint, surface SurfaceDimensions) *image.RGBA {
	w, h := int(surface.Width), int(surface.Height)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pos := r2.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			v := EstimateIntensity(pos, sources, surface)
			if v <= 0 {
				continue
			}
			r, gr, b := PressureColor(v).RGB255()
			a := uint8(clamp01(v) * 255)
			// RGBA stores premultiplied alpha
			img.SetRGBA(x, y, color.RGBA{
				R: premultiply(r, a),
				G: premultiply(gr, a),
				B: premultiply(b, a),
				A: a,
			})
		}
	}

	return img
}

// EncodePNG writes img as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func premultiply(c, a uint8) uint8 {
	return uint8(uint16(c) * uint16(a) / 255)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
