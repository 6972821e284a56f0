package armature

import (
	"strings"

	"github.com/akmonengine/armature/element"
)

// TreeString renders the tree below root as box-drawing text, one node
// per line. With bodiesOnly set, non-body elements are left out:
//
//	worldbody
//	└─── body torso
//	     ├─── freejoint root
//	     └─── body thigh
//	          └─── joint hip
func TreeString(root element.Node, bodiesOnly bool) string {
	var b strings.Builder
	b.WriteString(nodeLabel(root))
	b.WriteByte('\n')
	if body, ok := root.(*element.Body); ok {
		writeSubtree(&b, body, bodiesOnly, nil)
	}
	return b.String()
}

// TreeString renders the model's element tree.
func (m *Model) TreeString(bodiesOnly bool) string {
	return TreeString(m.World, bodiesOnly)
}

func writeSubtree(b *strings.Builder, body *element.Body, bodiesOnly bool, openLevels []bool) {
	children := body.Children()
	if bodiesOnly {
		bodies := make([]element.Node, 0, len(children))
		for _, c := range children {
			if c.Kind() == element.KindBody {
				bodies = append(bodies, c)
			}
		}
		children = bodies
	}

	for i, c := range children {
		last := i == len(children)-1

		for _, open := range openLevels {
			if open {
				b.WriteString("│    ")
			} else {
				b.WriteString("     ")
			}
		}
		if last {
			b.WriteString("└─── ")
		} else {
			b.WriteString("├─── ")
		}
		b.WriteString(nodeLabel(c))
		b.WriteByte('\n')

		if childBody, ok := c.(*element.Body); ok {
			writeSubtree(b, childBody, bodiesOnly, append(openLevels, !last))
		}
	}
}

func nodeLabel(n element.Node) string {
	if n.Kind() == element.KindWorldbody {
		return element.KindWorldbody.String()
	}
	if n.Name() == "" {
		return n.Kind().String()
	}
	return n.Kind().String() + " " + n.Name()
}
