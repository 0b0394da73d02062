// Package scene holds the flat, ordered list of renderable nodes and the
// lights they share, and drives one frame over them.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"shade-engine/gfx"
	"shade-engine/material"
)

// Entity is anything the frame driver can draw.
type Entity interface {
	Render(ctx *material.Context, cam material.Camera)
	RenderWireframe(ctx *material.Context, cam material.Camera, wire *material.Material)
	Base() *Node
}

// Node pairs a mesh with a material and a model transform.
type Node struct {
	Name     string
	Mesh     gfx.Mesh           // borrowed
	Material *material.Material // owned
	Model    mgl32.Mat4
	Hidden   bool
}

// NewNode returns a node with an identity transform.
func NewNode(name string, mesh gfx.Mesh, mat *material.Material) *Node {
	return &Node{Name: name, Mesh: mesh, Material: mat, Model: mgl32.Ident4()}
}

func (n *Node) Base() *Node { return n }

// Render draws the node. A node without a mesh or a material draws nothing.
func (n *Node) Render(ctx *material.Context, cam material.Camera) {
	if n.Hidden || n.Mesh == nil || n.Material == nil {
		return
	}
	n.Material.Render(ctx, n.Mesh, n.Model, cam)
}

func lines(s *gfx.State) { s.Polygon = gfx.Line }

// RenderWireframe draws the node's mesh once more with wire in line polygon
// mode, whatever kind wire is. Fill mode is back when it returns.
func (n *Node) RenderWireframe(ctx *material.Context, cam material.Camera, wire *material.Material) {
	if n.Hidden || n.Mesh == nil || wire == nil {
		return
	}
	wire.Render(ctx.Forcing(lines), n.Mesh, n.Model, cam)
}

// SetPosition replaces the translation of the model matrix.
func (n *Node) SetPosition(p mgl32.Vec3) {
	n.Model.SetCol(3, p.Vec4(1))
}

// Position returns the translation of the model matrix.
func (n *Node) Position() mgl32.Vec3 {
	return n.Model.Col(3).Vec3()
}
