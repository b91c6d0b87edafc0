package core

import "sync"

/**
 * @brief Payload passed to event listeners. Only the fields relevant
 * to the fired code are populated.
 */
type EventContext struct {
	/** @brief Name of the property or resource the event refers to. */
	Name string
	/** @brief Identifier of the object that changed, if any. */
	ObjectID uint32
	/** @brief Generic numeric payloads. */
	F32 [4]float32
	U32 [4]uint32
	/** @brief Generic boolean payload. */
	Flag bool
}

// System internal event codes. Applications should use codes beyond 255.
type SystemEventCode int

const (
	// A validated material property changed.
	/* Context usage:
	 * Name = property name, ObjectID = material id.
	 */
	EVENT_CODE_MATERIAL_PROPERTY_CHANGED SystemEventCode = 0x01

	// A node was attached to a parent.
	/* Context usage:
	 * ObjectID = child node id, U32[0] = parent node id.
	 */
	EVENT_CODE_NODE_ATTACHED SystemEventCode = 0x02

	// A node was detached from its parent.
	/* Context usage:
	 * ObjectID = child node id.
	 */
	EVENT_CODE_NODE_DETACHED SystemEventCode = 0x03

	// An asset file on disk changed and should be reloaded.
	/* Context usage:
	 * Name = asset path.
	 */
	EVENT_CODE_ASSET_CHANGED SystemEventCode = 0x04

	// A texture finished (re)loading.
	/* Context usage:
	 * Name = texture name, U32[0] = generation.
	 */
	EVENT_CODE_TEXTURE_LOADED SystemEventCode = 0x05

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 4096

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventCodeEntry struct {
	events []*registeredEvent
}

// State structure.
type eventSystemState struct {
	// Lookup table for event codes.
	registered [MAX_MESSAGE_CODES]eventCodeEntry
}

/**
 * Event system internal state.
 */
var onceEvent sync.Once
var isInitialized bool = false
var eventState *eventSystemState = nil

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool

func EventInitialize() bool {
	if isInitialized {
		return false
	}
	onceEvent.Do(func() {
		eventState = &eventSystemState{}
	})
	isInitialized = true
	return true
}

func EventShutdown() error {
	// Free the events arrays. Any objects pointed to should be destroyed on their own.
	for i := 0; i < MAX_MESSAGE_CODES; i++ {
		if len(eventState.registered[i].events) != 0 {
			eventState.registered[i].events = nil
		}
	}
	isInitialized = false
	return nil
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listener/callback combos will not be registered again and will cause this to return FALSE.
 * @param code The event code to listen for.
 * @param listener A pointer to a listener instance. Can be nil.
 * @param onEvent The callback to be invoked when the event code is fired.
 * @returns TRUE if the event is successfully registered; otherwise false.
 */
func EventRegister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if !isInitialized {
		return false
	}
	for _, e := range eventState.registered[code].events {
		if e.listener == listener {
			LogWarn("event listener already registered for code %d", code)
			return false
		}
	}
	// If at this point, no duplicate was found. Proceed with registration.
	event := &registeredEvent{
		listener: listener,
		callback: onEvent,
	}
	eventState.registered[code].events = append(eventState.registered[code].events, event)
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code. If no matching
 * registration is found, this function returns FALSE.
 * @param code The event code to stop listening for.
 * @param listener A pointer to a listener instance. Can be nil.
 * @param onEvent The callback to be unregistered.
 * @returns TRUE if the event is successfully unregistered; otherwise false.
 */
func EventUnregister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if !isInitialized {
		return false
	}
	events := eventState.registered[code].events
	for i, e := range events {
		if e.listener == listener && e.callback != nil {
			// Found one, remove it.
			eventState.registered[code].events = append(events[:i], events[i+1:]...)
			return true
		}
	}
	// Not found.
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * TRUE, the event is considered handled and is not passed on to any more listeners.
 * @param code The event code to fire.
 * @param sender A pointer to the sender. Can be nil.
 * @param data The event data.
 * @returns TRUE if handled, otherwise FALSE.
 */
func EventFire(code SystemEventCode, sender interface{}, context EventContext) bool {
	if !isInitialized {
		return false
	}
	for _, e := range eventState.registered[code].events {
		if e.callback(code, sender, e.listener, context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
