package element

import (
	"github.com/akmonengine/armature/quat"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Body is a node of the kinematic tree. Its Pose is relative to the parent
// body's frame; children are kept in attachment order and may be bodies or
// any other element kind.
type Body struct {
	node
	Pose

	world    bool
	children []Node
}

// NewBody creates a named body with an unset pose.
func NewBody(name string) *Body {
	return &Body{node: node{name: name}}
}

// NewWorldBody creates the root body of a tree, named "world". The world
// body carries no pose of its own and cannot be attached under another
// body.
func NewWorldBody() *Body {
	return &Body{node: node{name: "world"}, world: true}
}

func (b *Body) Kind() Kind {
	if b.world {
		return KindWorldbody
	}
	return KindBody
}

// Append attaches child as the last child of b.
func (b *Body) Append(child Node) error {
	if child == nil {
		return errors.New("cannot append a nil element")
	}
	if child.Parent() != nil {
		return errors.Errorf("%s %q is already attached", child.Kind(), child.Name())
	}
	if childBody, ok := child.(*Body); ok {
		if childBody.world {
			return errors.New("cannot append a world body")
		}
		for p := b; p != nil; p = p.Parent() {
			if p == childBody {
				return errors.Errorf("cannot append body %q under its own subtree", childBody.Name())
			}
		}
	}

	child.setParent(b)
	b.children = append(b.children, child)
	return nil
}

// Remove detaches child from b, reporting whether it was a direct child.
func (b *Body) Remove(child Node) bool {
	k := -1
	for i, c := range b.children {
		if c == child {
			k = i
			break
		}
	}

	if k == -1 {
		return false
	}

	b.children = append(b.children[:k], b.children[k+1:]...)
	child.setParent(nil)
	return true
}

// Children returns the ordered child list. The slice is shared with the
// body; callers must not mutate it.
func (b *Body) Children() []Node {
	return b.children
}

// Bodies returns the direct child bodies in attachment order.
func (b *Body) Bodies() []*Body {
	var bodies []*Body
	for _, c := range b.children {
		if childBody, ok := c.(*Body); ok {
			bodies = append(bodies, childBody)
		}
	}
	return bodies
}

// Descendants returns every body below b in depth-first order.
func (b *Body) Descendants() []*Body {
	var out []*Body
	var walk func(*Body)
	walk = func(parent *Body) {
		for _, c := range parent.children {
			if childBody, ok := c.(*Body); ok {
				out = append(out, childBody)
				walk(childBody)
			}
		}
	}
	walk(b)
	return out
}

// FindBody searches b and its subtree for a body with the given name.
func (b *Body) FindBody(name string) *Body {
	if b.name == name && !b.world {
		return b
	}
	for _, c := range b.children {
		if childBody, ok := c.(*Body); ok {
			if found := childBody.FindBody(name); found != nil {
				return found
			}
		}
	}
	return nil
}

// FindAll returns every node of the given kind in b's subtree whose name
// contains one of the given substrings. With no substrings, every node of
// the kind matches.
func (b *Body) FindAll(kind Kind, substrings ...string) []Node {
	var out []Node
	var walk func(*Body)
	walk = func(parent *Body) {
		for _, c := range parent.children {
			if c.Kind() == kind && (len(substrings) == 0 || AnySubstring(substrings, c.Name())) {
				out = append(out, c)
			}
			if childBody, ok := c.(*Body); ok {
				walk(childBody)
			}
		}
	}
	walk(b)
	return out
}

// WorldPos returns b's position in the world frame, composing local poses
// up the parent chain.
func (b *Body) WorldPos() mgl64.Vec3 {
	pos := b.Pos()
	for p := b.Parent(); p != nil; p = p.Parent() {
		pos = quat.RotateVec(pos, p.Quat()).Add(p.Pos())
	}
	return pos
}

// WorldQuat returns b's orientation in the world frame.
func (b *Body) WorldQuat() mgl64.Quat {
	q := b.Quat()
	for p := b.Parent(); p != nil; p = p.Parent() {
		q = quat.Mul(p.Quat(), q)
	}
	return q
}
