// Package element defines the nodes of a kinematic tree: bodies and the
// elements attached to them (sites, geoms, joints, cameras, lights,
// inertials). Every node's pose is local, relative to its parent body's
// frame; absent pose values denote the identity.
package element

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind identifies the element type of a tree node.
type Kind int

const (
	KindWorldbody Kind = iota
	KindBody
	KindSite
	KindGeom
	KindJoint
	KindFreejoint
	KindCamera
	KindLight
	KindInertial
)

func (k Kind) String() string {
	switch k {
	case KindWorldbody:
		return "worldbody"
	case KindBody:
		return "body"
	case KindSite:
		return "site"
	case KindGeom:
		return "geom"
	case KindJoint:
		return "joint"
	case KindFreejoint:
		return "freejoint"
	case KindCamera:
		return "camera"
	case KindLight:
		return "light"
	case KindInertial:
		return "inertial"
	}
	return "unknown"
}

// Node is an element attached somewhere in a kinematic tree.
type Node interface {
	Kind() Kind
	Name() string
	Parent() *Body

	setParent(*Body)
}

// Positioned is implemented by nodes that carry a local position.
type Positioned interface {
	Node
	Pos() mgl64.Vec3
	SetPos(mgl64.Vec3)
	HasPos() bool
}

// Oriented is implemented by nodes that carry a local orientation.
type Oriented interface {
	Node
	Quat() mgl64.Quat
	SetQuat(mgl64.Quat)
	HasQuat() bool
}

// node carries the identity and tree linkage shared by all elements.
type node struct {
	name   string
	parent *Body
}

func (n *node) Name() string {
	return n.name
}

func (n *node) Parent() *Body {
	return n.parent
}

func (n *node) setParent(p *Body) {
	n.parent = p
}

// AnySubstring reports whether any of the given substrings occurs in s.
func AnySubstring(substrings []string, s string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
