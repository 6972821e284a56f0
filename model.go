package armature

import (
	"github.com/akmonengine/armature/element"
	"github.com/akmonengine/armature/physics"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

const DEFAULT_WORKERS = 1

// Model owns a kinematic tree rooted at a world body, the actuators
// acting on its joints, and the event stream reporting edits. Editing
// methods buffer events; they are delivered on Capture or Flush.
type Model struct {
	Name      string
	World     *element.Body
	Actuators []*element.Actuator
	Workers   int

	Events Events
}

// NewModel creates an empty model with a fresh world body.
func NewModel(name string) *Model {
	return &Model{
		Name:   name,
		World:  element.NewWorldBody(),
		Events: NewEvents(),
	}
}

// Attach appends child under parent and buffers an attach event.
func (m *Model) Attach(parent *element.Body, child element.Node) error {
	if err := parent.Append(child); err != nil {
		return errors.Wrapf(err, "attach under %q", parent.Name())
	}

	m.Events.emitAttach(parent, child)
	Log.WithFields(Fields{
		"parent": parent.Name(),
		"child":  child.Name(),
		"kind":   child.Kind().String(),
	}).Debug("Attached element")
	return nil
}

// Detach removes child from parent, reporting whether it was attached
// there.
func (m *Model) Detach(parent *element.Body, child element.Node) bool {
	if !parent.Remove(child) {
		return false
	}

	m.Events.emitDetach(parent, child)
	Log.WithFields(Fields{
		"parent": parent.Name(),
		"child":  child.Name(),
	}).Debug("Detached element")
	return true
}

// AddActuator registers an actuator. Actuator names must be unique.
func (m *Model) AddActuator(actuator *element.Actuator) error {
	if actuator == nil {
		return errors.New("cannot register a nil actuator")
	}
	for _, a := range m.Actuators {
		if a.Name == actuator.Name {
			return errors.Errorf("actuator %q is already registered", actuator.Name)
		}
	}

	m.Actuators = append(m.Actuators, actuator)
	return nil
}

// RemoveActuator drops the named actuator, reporting whether it was
// registered.
func (m *Model) RemoveActuator(name string) bool {
	k := -1
	for i, a := range m.Actuators {
		if a.Name == name {
			k = i
			break
		}
	}

	if k == -1 {
		return false
	}

	m.Actuators = append(m.Actuators[:k], m.Actuators[k+1:]...)
	return true
}

// FindBody searches the tree for a body with the given name.
func (m *Model) FindBody(name string) *element.Body {
	return m.World.FindBody(name)
}

// Reframe rewrites a body's local pose in place, compensating its
// children so the subtree keeps its world placement, and buffers a
// reframe event carrying the replaced pose.
func (m *Model) Reframe(body *element.Body, newPos *mgl64.Vec3, newQuat *mgl64.Quat) {
	oldPos := body.Pos()
	oldQuat := body.Quat()

	ReframeBody(body, newPos, newQuat)

	m.Events.emitReframe(body, oldPos, oldQuat)
	Log.WithFields(Fields{"body": body.Name()}).Debug("Reframed body")
}

// Capture computes the world pose of every body, site and joint and
// returns the resulting snapshot. Buffered events, including the capture
// itself, are flushed before returning.
func (m *Model) Capture() (*physics.Snapshot, error) {
	m.Workers = max(DEFAULT_WORKERS, m.Workers)

	snapshot, err := physics.CaptureState(m.World, m.Actuators, m.Workers)
	if err != nil {
		return nil, errors.Wrapf(err, "capture %q", m.Name)
	}

	Log.WithFields(Fields{
		"model":  m.Name,
		"bodies": len(snapshot.Bodies()),
		"joints": len(snapshot.Joints()),
	}).Debug("Captured state")

	m.Events.emitCapture(snapshot)
	m.Events.flush()
	return snapshot, nil
}

// Flush delivers buffered edit events without capturing.
func (m *Model) Flush() {
	m.Events.flush()
}
