package armature

import (
	"github.com/akmonengine/armature/element"
	"github.com/akmonengine/armature/physics"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	ELEMENT_ATTACHED EventType = iota
	ELEMENT_DETACHED
	BODY_REFRAMED
	STATE_CAPTURED
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Tree edit events
type AttachEvent struct {
	Parent *element.Body
	Child  element.Node
}

func (e AttachEvent) Type() EventType { return ELEMENT_ATTACHED }

type DetachEvent struct {
	Parent *element.Body
	Child  element.Node
}

func (e DetachEvent) Type() EventType { return ELEMENT_DETACHED }

// ReframeEvent reports a body reframe with the local pose it replaced
type ReframeEvent struct {
	Body    *element.Body
	OldPos  mgl64.Vec3
	OldQuat mgl64.Quat
}

func (e ReframeEvent) Type() EventType { return BODY_REFRAMED }

type CaptureEvent struct {
	Snapshot *physics.Snapshot
}

func (e CaptureEvent) Type() EventType { return STATE_CAPTURED }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 64),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emitAttach(parent *element.Body, child element.Node) {
	e.buffer = append(e.buffer, AttachEvent{Parent: parent, Child: child})
}

func (e *Events) emitDetach(parent *element.Body, child element.Node) {
	e.buffer = append(e.buffer, DetachEvent{Parent: parent, Child: child})
}

func (e *Events) emitReframe(body *element.Body, oldPos mgl64.Vec3, oldQuat mgl64.Quat) {
	e.buffer = append(e.buffer, ReframeEvent{Body: body, OldPos: oldPos, OldQuat: oldQuat})
}

func (e *Events) emitCapture(snapshot *physics.Snapshot) {
	e.buffer = append(e.buffer, CaptureEvent{Snapshot: snapshot})
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
