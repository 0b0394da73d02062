package opengl

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"shade-engine/gfx"
	"shade-engine/hdre"
)

// Texture is a GL texture object, either 2D or a cube map.
type Texture struct {
	id     uint32
	target uint32
	name   string
}

func (t *Texture) Name() string { return t.name }

// TextureCache implements gfx.TextureLoader. Files that fail to load are
// replaced by a 1x1 blank texture and a warning, so a missing asset degrades
// the picture instead of aborting the scene.
type TextureCache struct {
	log      *zap.Logger
	textures map[string]*Texture
	envs     map[string]*hdre.Environment
	cubes    map[string]*Texture
	blank    *Texture
}

// NewTextureCache returns an empty cache. The GL context must be current.
func NewTextureCache(log *zap.Logger) *TextureCache {
	c := &TextureCache{
		log:      log,
		textures: make(map[string]*Texture),
		envs:     make(map[string]*hdre.Environment),
		cubes:    make(map[string]*Texture),
	}
	px := image.NewRGBA(image.Rect(0, 0, 1, 1))
	px.Set(0, 0, color.White)
	c.blank = upload2D("blank", px)
	return c
}

// Texture loads a 2D texture from path.
func (c *TextureCache) Texture(path string) (gfx.Texture, error) {
	if t, ok := c.textures[path]; ok {
		return t, nil
	}
	img, err := hdre.ReadImage(path)
	if err != nil {
		c.log.Warn("texture fallback", zap.String("path", path), zap.Error(err))
		c.textures[path] = c.blank
		return c.blank, nil
	}
	t := upload2D(path, hdre.ToRGBA(img))
	c.textures[path] = t
	return t, nil
}

// Environment loads and pre-filters a panorama. A file that cannot be read
// yields a flat gray environment.
func (c *TextureCache) Environment(path string) (*hdre.Environment, error) {
	if e, ok := c.envs[path]; ok {
		return e, nil
	}
	env, err := hdre.Load(path)
	if err != nil {
		c.log.Warn("environment fallback", zap.String("path", path), zap.Error(err))
		gray := image.NewRGBA(image.Rect(0, 0, 2, 1))
		draw.Draw(gray, gray.Bounds(), image.NewUniform(color.Gray{Y: 128}), image.Point{}, draw.Src)
		env, err = hdre.FromImage(path, gray)
		if err != nil {
			return nil, err
		}
	}
	c.envs[path] = env
	return env, nil
}

// Cubemap uploads one pre-filtered level of env as a cube map.
func (c *TextureCache) Cubemap(env *hdre.Environment, level int) (gfx.Texture, error) {
	key := fmt.Sprintf("%s#%d", env.Name(), level)
	if t, ok := c.cubes[key]; ok {
		return t, nil
	}
	faces, err := env.Faces(level)
	if err != nil {
		return nil, err
	}
	t := uploadCube(key, faces)
	c.cubes[key] = t
	return t, nil
}

// Destroy frees every texture the cache created.
func (c *TextureCache) Destroy() {
	seen := map[*Texture]bool{}
	free := func(t *Texture) {
		if t != nil && !seen[t] {
			seen[t] = true
			gl.DeleteTextures(1, &t.id)
		}
	}
	for _, t := range c.textures {
		free(t)
	}
	for _, t := range c.cubes {
		free(t)
	}
	free(c.blank)
	clear(c.textures)
	clear(c.cubes)
	clear(c.envs)
}

// ── Upload ────────────────────────────────────────────────────────────────────

func upload2D(name string, img *image.RGBA) *Texture {
	t := &Texture{target: gl.TEXTURE_2D, name: name}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	b := img.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

func uploadCube(name string, faces [6]*image.RGBA) *Texture {
	t := &Texture{target: gl.TEXTURE_CUBE_MAP, name: name}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.id)

	for i, f := range faces {
		b := f.Bounds()
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return t
}
