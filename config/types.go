// Package config defines the typed device configuration tree and the
// schema tables that resolve it from a generic document.
//
// The tree has depth-bounded recursion: an Action may carry Gestures, a
// Gesture may carry a BasicAction, and a BasicAction never carries
// Gestures. GestureAction implements Action but not BasicAction, so the
// bound holds for values built in code as well as for resolved documents.
package config

import (
	"math"
	"strconv"
	"time"

	"logidconf/schema"
)

// DefaultIOTimeout is used when a document does not set io_timeout.
const DefaultIOTimeout = 500 * time.Millisecond

// MaxIOTimeout is the largest io_timeout, in milliseconds, a time.Duration can hold.
const MaxIOTimeout = float64(math.MaxInt64 / int64(time.Millisecond))

// Config is the root of a resolved document.
type Config struct {
	Devices   schema.Optional[schema.Collection[string, DeviceSettings]]
	Ignore    schema.Optional[schema.Set[uint16]]
	IOTimeout schema.Optional[float64]
}

// Device returns the settings stored under name.
func (c *Config) Device(name string) (DeviceSettings, bool) {
	devices, ok := c.Devices.Get()
	if !ok {
		return nil, false
	}

	return devices.Get(name)
}

// Ignored reports whether the product ID is listed under ignore.
func (c *Config) Ignored(pid uint16) bool {
	ignore, ok := c.Ignore.Get()
	return ok && ignore.Contains(pid)
}

// Timeout returns io_timeout, given in milliseconds, as a duration. Values
// outside [0, MaxIOTimeout] are clamped; resolution never produces them.
func (c *Config) Timeout() time.Duration {
	ms := c.IOTimeout.OrElse(float64(DefaultIOTimeout / time.Millisecond))
	if math.IsNaN(ms) {
		return DefaultIOTimeout
	}

	ms = min(max(ms, 0), MaxIOTimeout)

	return time.Duration(ms * float64(time.Millisecond))
}

// DeviceSettings is either a Device with named profiles or a bare Profile.
type DeviceSettings interface {
	isDeviceSettings()
}

// Device holds named profiles and the one selected by default.
type Device struct {
	DefaultProfile string
	Profiles       schema.Collection[string, Profile]
}

func (Device) isDeviceSettings() {}

// Profile holds the settings applied to a device.
type Profile struct {
	DPI         schema.Optional[schema.Multi[int]]
	SmartShift  schema.Optional[SmartShift]
	HiresScroll schema.Optional[HiresScrollSetting]
	Buttons     schema.Optional[schema.Collection[uint16, Button]]
	ThumbWheel  schema.Optional[ThumbWheel]
}

func (Profile) isDeviceSettings() {}

// ActiveProfile returns the profile a device starts with: the bare profile
// itself, or the default profile of a Device.
func ActiveProfile(ds DeviceSettings) (Profile, bool) {
	switch v := ds.(type) {
	case Profile:
		return v, true
	case Device:
		return v.Profiles.Get(v.DefaultProfile)
	default:
		return Profile{}, false
	}
}

// SmartShift switches the wheel between ratchet and free spin by speed.
type SmartShift struct {
	On        schema.Optional[bool]
	Threshold schema.Optional[uint]
}

// HiresScroll configures high resolution scrolling and its gesture mapping.
type HiresScroll struct {
	Hires  schema.Optional[bool]
	Invert schema.Optional[bool]
	Target schema.Optional[bool]
	Up     schema.Optional[Gesture]
	Down   schema.Optional[Gesture]
}

// HiresScrollSetting is either a bare on/off flag or a full HiresScroll group.
type HiresScrollSetting struct {
	flag   bool
	detail HiresScroll
	isFlag bool
}

// HiresScrollFlag returns the bare boolean form.
func HiresScrollFlag(on bool) HiresScrollSetting {
	return HiresScrollSetting{flag: on, isFlag: true}
}

// HiresScrollDetail returns the group form.
func HiresScrollDetail(h HiresScroll) HiresScrollSetting {
	return HiresScrollSetting{detail: h}
}

// Flag returns the value of the boolean form.
func (h HiresScrollSetting) Flag() (bool, bool) { return h.flag, h.isFlag }

// Detail returns the value of the group form.
func (h HiresScrollSetting) Detail() (HiresScroll, bool) { return h.detail, !h.isFlag }

// ThumbWheel configures the side wheel and the actions bound to it.
type ThumbWheel struct {
	Divert schema.Optional[bool]
	Invert schema.Optional[bool]
	Left   schema.Optional[Gesture]
	Right  schema.Optional[Gesture]
	Proxy  schema.Optional[BasicAction]
	Touch  schema.Optional[BasicAction]
	Tap    schema.Optional[BasicAction]
}

// Button remaps one control. An absent action keeps the default behaviour.
type Button struct {
	Action schema.Optional[Action]
}

// NameOrNumber is a scalar given either by name or by number, such as a
// key code ("KEY_A" or 30), a host or an axis.
type NameOrNumber struct {
	name   string
	number int
	named  bool
}

// Named returns the name form.
func Named(name string) NameOrNumber { return NameOrNumber{name: name, named: true} }

// Numbered returns the number form.
func Numbered(n int) NameOrNumber { return NameOrNumber{number: n} }

// Name returns the value of the name form.
func (v NameOrNumber) Name() (string, bool) { return v.name, v.named }

// Number returns the value of the number form.
func (v NameOrNumber) Number() (int, bool) { return v.number, !v.named }

// String renders the name, or the number in decimal.
func (v NameOrNumber) String() string {
	if v.named {
		return v.name
	}

	return strconv.Itoa(v.number)
}

// Action is anything a button may be bound to.
type Action interface {
	isAction()
}

// BasicAction is an Action that carries no gestures. It is the only kind
// of action a gesture or thumb wheel may trigger.
type BasicAction interface {
	Action
	isBasicAction()
}

// NoAction disables the button.
type NoAction struct{}

// KeypressAction sends one or more keys.
type KeypressAction struct {
	Keys schema.Multi[NameOrNumber]
}

// ToggleSmartShift flips SmartShift on or off.
type ToggleSmartShift struct{}

// ToggleHiresScroll flips high resolution scrolling on or off.
type ToggleHiresScroll struct{}

// CycleDPI steps through a list of DPI values.
type CycleDPI struct {
	DPIs   []int
	Sensor schema.Optional[int]
}

// ChangeDPI adds Inc to the current DPI.
type ChangeDPI struct {
	Inc    int
	Sensor schema.Optional[int]
}

// ChangeHost switches the device to another paired host.
type ChangeHost struct {
	Host NameOrNumber
}

// GestureAction maps movement directions to gestures while the button is held.
type GestureAction struct {
	Gestures schema.Optional[schema.Collection[string, Gesture]]
}

func (NoAction) isAction()          {}
func (KeypressAction) isAction()    {}
func (ToggleSmartShift) isAction()  {}
func (ToggleHiresScroll) isAction() {}
func (CycleDPI) isAction()          {}
func (ChangeDPI) isAction()         {}
func (ChangeHost) isAction()        {}
func (GestureAction) isAction()     {}

func (NoAction) isBasicAction()          {}
func (KeypressAction) isBasicAction()    {}
func (ToggleSmartShift) isBasicAction()  {}
func (ToggleHiresScroll) isBasicAction() {}
func (CycleDPI) isBasicAction()          {}
func (ChangeDPI) isBasicAction()         {}
func (ChangeHost) isBasicAction()        {}

// Gesture describes what happens when a button is held and moved.
type Gesture interface {
	isGesture()
}

// NoGesture does nothing beyond its threshold.
type NoGesture struct {
	Threshold schema.Optional[int]
}

// AxisGesture maps movement onto a scroll or pointer axis.
type AxisGesture struct {
	Threshold      schema.Optional[int]
	Axis           NameOrNumber
	AxisMultiplier schema.Optional[float64]
}

// IntervalSettings is shared by gestures that repeat their action while moving.
type IntervalSettings struct {
	Threshold schema.Optional[int]
	Action    schema.Optional[BasicAction]
	Interval  int
}

// IntervalGesture repeats its action every interval of movement.
type IntervalGesture struct {
	IntervalSettings
}

// FewPixelsGesture repeats its action every few pixels of movement.
type FewPixelsGesture struct {
	IntervalSettings
}

// TriggerSettings is shared by gestures that fire their action once.
type TriggerSettings struct {
	Threshold schema.Optional[int]
	Action    schema.Optional[BasicAction]
}

// ReleaseGesture fires on button release.
type ReleaseGesture struct {
	TriggerSettings
}

// ThresholdGesture fires once movement passes the threshold.
type ThresholdGesture struct {
	TriggerSettings
}

func (NoGesture) isGesture()        {}
func (AxisGesture) isGesture()      {}
func (IntervalGesture) isGesture()  {}
func (FewPixelsGesture) isGesture() {}
func (ReleaseGesture) isGesture()   {}
func (ThresholdGesture) isGesture() {}
