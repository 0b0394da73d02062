package hdre

import (
	"image"

	"github.com/chewxy/math32"
)

// Face indexes cube faces in GL upload order.
type Face int

const (
	PosX Face = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// Faces resamples a level onto the six faces of a cube, ordered by Face.
// Each face is square with a side of a quarter of the panorama's width.
func (e *Environment) Faces(level int) ([6]*image.RGBA, error) {
	var faces [6]*image.RGBA
	src, err := e.Level(level)
	if err != nil {
		return faces, err
	}
	n := max(src.Bounds().Dx()/4, 1)
	for f := range faces {
		img := image.NewRGBA(image.Rect(0, 0, n, n))
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				u := 2*(float32(x)+0.5)/float32(n) - 1
				v := 2*(float32(y)+0.5)/float32(n) - 1
				dx, dy, dz := Direction(Face(f), u, v)
				sx, sy := equirect(src, dx, dy, dz)
				o := img.PixOffset(x, y)
				s := src.PixOffset(sx, sy)
				copy(img.Pix[o:o+4], src.Pix[s:s+4])
			}
		}
		faces[f] = img
	}
	return faces, nil
}

// Direction maps face coordinates u, v in [-1, 1] to a world direction using
// the OpenGL cube map convention.
func Direction(f Face, u, v float32) (x, y, z float32) {
	switch f {
	case PosX:
		return 1, -v, -u
	case NegX:
		return -1, -v, u
	case PosY:
		return u, 1, v
	case NegY:
		return u, -1, -v
	case PosZ:
		return u, -v, 1
	default:
		return -u, -v, -1
	}
}

// equirect returns the pixel of src seen along direction (x, y, z).
func equirect(src *image.RGBA, x, y, z float32) (int, int) {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	l := math32.Sqrt(x*x + y*y + z*z)
	theta := math32.Atan2(z, x)
	phi := math32.Acos(clamp(y/l, -1, 1))

	px := int((theta + math32.Pi) / (2 * math32.Pi) * float32(w))
	py := int(phi / math32.Pi * float32(h))
	return min(max(px, 0), w-1), min(max(py, 0), h-1)
}

func clamp(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}
