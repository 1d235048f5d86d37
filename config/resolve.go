package config

import (
	"logidconf/diagnostic"
	"logidconf/node"
	"logidconf/schema"
)

// Resolve converts a whole document into a Config. Resolution is
// all-or-nothing: on error no Config is returned, but the diagnostics
// collected up to the failure are.
func Resolve(root node.Node, opts ...schema.Option) (*Config, *diagnostic.Diagnostics, error) {
	c, diags, err := schema.Resolve[Config](configGroup, root, opts...)
	if err != nil {
		return nil, diags, err
	}

	if !c.IOTimeout.IsSet() {
		diags.AddInfo("default_io_timeout", "io_timeout not set, using "+DefaultIOTimeout.String(),
			configGroup.Name(), "io_timeout")
	}

	return &c, diags, nil
}

// ResolveDevice resolves a single device entry, either a Device or a bare Profile.
func ResolveDevice(n node.Node, opts ...schema.Option) (DeviceSettings, *diagnostic.Diagnostics, error) {
	return schema.Resolve[DeviceSettings](deviceSettings, n, opts...)
}

func ResolveProfile(n node.Node, opts ...schema.Option) (Profile, *diagnostic.Diagnostics, error) {
	return schema.Resolve[Profile](profileGroup, n, opts...)
}

func ResolveButton(n node.Node, opts ...schema.Option) (Button, *diagnostic.Diagnostics, error) {
	return schema.Resolve[Button](buttonGroup, n, opts...)
}

func ResolveAction(n node.Node, opts ...schema.Option) (Action, *diagnostic.Diagnostics, error) {
	return schema.Resolve[Action](actionType, n, opts...)
}

// ResolveBasicAction resolves an action that may not carry gestures.
func ResolveBasicAction(n node.Node, opts ...schema.Option) (BasicAction, *diagnostic.Diagnostics, error) {
	return schema.Resolve[BasicAction](basicActionType, n, opts...)
}

func ResolveGesture(n node.Node, opts ...schema.Option) (Gesture, *diagnostic.Diagnostics, error) {
	return schema.Resolve[Gesture](gestureType, n, opts...)
}

// Encode converts a Config back into a document tree. Absent optional
// fields are omitted and fields keep their declared order.
func Encode(c *Config) node.Node {
	return configGroup.Encode(*c)
}

// EncodeAction converts an Action back into a document tree.
func EncodeAction(a Action) node.Node {
	return actionType.Encode(a)
}

// EncodeGesture converts a Gesture back into a document tree.
func EncodeGesture(g Gesture) node.Node {
	return gestureType.Encode(g)
}

// ActionTypes returns the accepted values of an action's type field.
func ActionTypes() []string { return actionType.Values() }

// BasicActionTypes returns the action types allowed below a gesture.
func BasicActionTypes() []string { return basicActionType.Values() }

// GestureModes returns the accepted values of a gesture's mode field.
func GestureModes() []string { return gestureType.Values() }
