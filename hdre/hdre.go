// Package hdre loads environment panoramas and derives the pre-filtered
// levels the PBR shader samples for image-based lighting.
//
// Level 0 is the source panorama. Levels 1..4 are progressively smaller and
// blurrier copies, one per roughness bucket (i/4).
package hdre

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/anthonynsimon/bild/blur"
	"github.com/h2non/filetype"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Levels is the number of pre-filtered levels every environment carries.
const Levels = 5

var (
	// ErrLevel is returned for level indices outside [0, Levels).
	ErrLevel = errors.New("hdre: level out of range")
	// ErrFormat is returned when the source is not a decodable image.
	ErrFormat = errors.New("hdre: unsupported format")
)

// blurStep is the gaussian radius added per level, in pixels of the level.
const blurStep = 1.5

// Environment is one decoded panorama plus its blur chain.
type Environment struct {
	name   string
	levels [Levels]*image.RGBA
}

// Load reads and decodes the panorama at path.
func Load(path string) (*Environment, error) {
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return FromImage(path, img)
}

// ReadImage decodes any image file the engine accepts (png, jpeg, bmp, tiff,
// webp). The content is sniffed before decoding so that a mislabelled file
// fails with ErrFormat.
func ReadImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %q: %w", path, err)
	}
	if !filetype.IsImage(data) {
		return nil, fmt.Errorf("image %q: %w", path, ErrFormat)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w: %v", path, ErrFormat, err)
	}
	return img, nil
}

// FromImage builds the level chain from an in-memory panorama.
func FromImage(name string, img image.Image) (*Environment, error) {
	b := img.Bounds()
	if b.Dx() < 2 || b.Dy() < 1 {
		return nil, fmt.Errorf("environment %q: empty image: %w", name, ErrFormat)
	}

	env := &Environment{name: name}
	env.levels[0] = ToRGBA(img)
	for i := 1; i < Levels; i++ {
		prev := env.levels[i-1]
		w := max(prev.Bounds().Dx()/2, 2)
		h := max(prev.Bounds().Dy()/2, 1)
		small := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.BiLinear.Scale(small, small.Bounds(), prev, prev.Bounds(), xdraw.Src, nil)
		env.levels[i] = blur.Gaussian(small, blurStep*float64(i))
	}
	return env, nil
}

// Name is the identifier the environment was loaded from.
func (e *Environment) Name() string {
	return e.name
}

// Level returns pre-filtered level i.
func (e *Environment) Level(i int) (*image.RGBA, error) {
	if i < 0 || i >= Levels {
		return nil, fmt.Errorf("environment %q level %d: %w", e.name, i, ErrLevel)
	}
	return e.levels[i], nil
}

// Roughness is the roughness bucket level i was filtered for.
func Roughness(i int) float32 {
	return float32(i) / float32(Levels-1)
}

// ToRGBA copies img into a tightly packed RGBA image with origin (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
