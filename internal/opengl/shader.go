package opengl

import (
	"errors"
	"fmt"
	"os"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"shade-engine/gfx"
)

// Program is a linked GL program built from a vertex/fragment file pair.
// Uniform locations are resolved lazily and cached per name.
type Program struct {
	id     uint32
	vsPath string
	fsPath string
	locs   map[string]int32
}

func (p *Program) Enable()  { gl.UseProgram(p.id) }
func (p *Program) Disable() { gl.UseProgram(0) }

func (p *Program) loc(name string) int32 {
	if l, ok := p.locs[name]; ok {
		return l
	}
	l := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locs[name] = l
	return l
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.loc(name), 1, false, &m[0])
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3fv(p.loc(name), 1, &v[0])
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4fv(p.loc(name), 1, &v[0])
}

func (p *Program) SetFloat(name string, f float32) { gl.Uniform1f(p.loc(name), f) }
func (p *Program) SetInt(name string, i int32)     { gl.Uniform1i(p.loc(name), i) }

func (p *Program) SetBool(name string, b bool) {
	var i int32
	if b {
		i = 1
	}
	gl.Uniform1i(p.loc(name), i)
}

// SetTexture binds tex on unit and points the sampler at it. Handles that
// did not come from this backend are ignored.
func (p *Program) SetTexture(name string, tex gfx.Texture, unit int) {
	t, ok := tex.(*Texture)
	if !ok || t == nil {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(t.target, t.id)
	gl.Uniform1i(p.loc(name), int32(unit))
}

// ShaderCache compiles programs from files under Dir, once per pair.
type ShaderCache struct {
	log      *zap.Logger
	programs map[string]*Program
}

// NewShaderCache returns an empty cache.
func NewShaderCache(log *zap.Logger) *ShaderCache {
	return &ShaderCache{log: log, programs: make(map[string]*Program)}
}

// Shader returns the program for the pair, compiling it on first use.
func (c *ShaderCache) Shader(vsPath, fsPath string) (gfx.Shader, error) {
	key := vsPath + "|" + fsPath
	if p, ok := c.programs[key]; ok {
		return p, nil
	}
	id, err := buildProgram(vsPath, fsPath)
	if err != nil {
		c.log.Error("shader build failed", zap.String("vs", vsPath), zap.String("fs", fsPath), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", gfx.ErrNoShader, err)
	}
	p := &Program{id: id, vsPath: vsPath, fsPath: fsPath, locs: make(map[string]int32)}
	c.programs[key] = p
	return p, nil
}

// ReloadAll recompiles every cached program from disk. A program that fails
// to rebuild keeps running its previous binary.
func (c *ShaderCache) ReloadAll() error {
	var errs []error
	for _, p := range c.programs {
		id, err := buildProgram(p.vsPath, p.fsPath)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		gl.DeleteProgram(p.id)
		p.id = id
		clear(p.locs)
	}
	c.log.Info("shaders reloaded", zap.Int("programs", len(c.programs)), zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}

// Destroy deletes every program.
func (c *ShaderCache) Destroy() {
	for k, p := range c.programs {
		gl.DeleteProgram(p.id)
		delete(c.programs, k)
	}
}

// ── Compilation ───────────────────────────────────────────────────────────────

func buildProgram(vsPath, fsPath string) (uint32, error) {
	vs, err := os.ReadFile(vsPath)
	if err != nil {
		return 0, fmt.Errorf("read vertex shader: %w", err)
	}
	fs, err := os.ReadFile(fsPath)
	if err != nil {
		return 0, fmt.Errorf("read fragment shader: %w", err)
	}
	id, err := newProgram(string(vs)+"\x00", string(fs)+"\x00")
	if err != nil {
		return 0, fmt.Errorf("%s + %s: %w", vsPath, fsPath, err)
	}
	return id, nil
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	defer gl.DeleteShader(vert)
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}
	defer gl.DeleteShader(frag)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
