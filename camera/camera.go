// Package camera implements the interactive perspective camera the viewer
// steers. Materials only consume its matrices and eye position.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MinDistance bounds how close ChangeDistance can bring the eye to the center.
const MinDistance = 0.1

// Camera is a look-at perspective camera.
type Camera struct {
	eye    mgl32.Vec3
	center mgl32.Vec3
	up     mgl32.Vec3

	FOV    float32 // vertical field of view in degrees
	Aspect float32
	Near   float32
	Far    float32

	// Cached matrices
	view           mgl32.Mat4
	projection     mgl32.Mat4
	viewProjection mgl32.Mat4
}

// New returns a camera at (0,0,1) looking at the origin with a 45° lens.
func New() *Camera {
	c := &Camera{FOV: 45, Aspect: 1, Near: 0.1, Far: 10000}
	c.LookAt(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return c
}

// LookAt places the camera at eye looking toward center.
func (c *Camera) LookAt(eye, center, up mgl32.Vec3) {
	c.eye = eye
	c.center = center
	c.up = up.Normalize()
	c.update()
}

// SetPerspective replaces the lens parameters. fov is in degrees.
func (c *Camera) SetPerspective(fov, aspect, near, far float32) {
	c.FOV, c.Aspect, c.Near, c.Far = fov, aspect, near, far
	c.update()
}

// SetAspect updates the aspect ratio, typically after a window resize.
func (c *Camera) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.Aspect = aspect
	c.update()
}

func (c *Camera) Eye() mgl32.Vec3 { return c.eye }
func (c *Camera) Center() mgl32.Vec3 { return c.center }
func (c *Camera) Up() mgl32.Vec3 { return c.up }
func (c *Camera) View() mgl32.Mat4 { return c.view }
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }
func (c *Camera) ViewProjection() mgl32.Mat4 { return c.viewProjection }
func (c *Camera) Front() mgl32.Vec3 { return c.center.Sub(c.eye).Normalize() }
func (c *Camera) Distance() float32 { return c.center.Sub(c.eye).Len() }
func (c *Camera) LocalVector(v mgl32.Vec3) mgl32.Vec3 { return c.view.Inv().Mul4x1(v.Vec4(0)).Vec3() }

// Move translates eye and center by a camera-space delta.
func (c *Camera) Move(delta mgl32.Vec3) {
	local := c.LocalVector(delta)
	c.eye = c.eye.Sub(local)
	c.center = c.center.Sub(local)
	c.update()
}

// MoveGlobal translates eye and center by a world-space delta.
func (c *Camera) MoveGlobal(delta mgl32.Vec3) {
	c.eye = c.eye.Sub(delta)
	c.center = c.center.Sub(delta)
	c.update()
}

// Rotate turns the view direction by angle radians around a world-space axis.
func (c *Camera) Rotate(angle float32, axis mgl32.Vec3) {
	front := mgl32.QuatRotate(angle, axis.Normalize()).Rotate(c.center.Sub(c.eye))
	c.center = c.eye.Add(front)
	c.update()
}

// Orbit swings the eye around the center. Pitch stops near the poles so the
// view never flips over the up vector.
func (c *Camera) Orbit(yaw, pitch float32) {
	front := c.Front()
	align := front.Dot(c.up)
	right := c.LocalVector(mgl32.Vec3{1, 0, 0})
	dist := c.eye.Sub(c.center)

	dist = mgl32.QuatRotate(yaw, mgl32.Vec3{0, -1, 0}).Rotate(dist)
	if !(align > 0.99 && pitch < 0) && !(align < -0.99 && pitch > 0) {
		dist = mgl32.QuatRotate(pitch, right).Rotate(dist)
	}

	c.eye = c.center.Add(dist)
	c.update()
}

// ChangeDistance moves the eye toward (positive delta) or away from the center.
func (c *Camera) ChangeDistance(delta float32) {
	dir := c.eye.Sub(c.center)
	d := math32.Max(dir.Len()-delta, MinDistance)
	c.eye = c.center.Add(dir.Normalize().Mul(d))
	c.update()
}

func (c *Camera) update() {
	c.view = mgl32.LookAtV(c.eye, c.center, c.up)
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	c.viewProjection = c.projection.Mul4(c.view)
}
