package config

import (
	"logidconf/node"
	"logidconf/schema"
)

// Scalar unions.
var (
	// unsignedName holds key codes and axes: a name or an unsigned number.
	unsignedName = schema.NewUnion("name or unsigned integer",
		schema.When(schema.IsScalar(node.ScalarString), schema.String, Named, NameOrNumber.Name),
		schema.When(schema.IsScalar(node.ScalarInt), schema.Uint,
			func(u uint) NameOrNumber { return Numbered(int(u)) },
			func(v NameOrNumber) (uint, bool) {
				n, ok := v.Number()
				return uint(n), ok && n >= 0
			},
		),
	)

	// hostRef selects a host by number or by name.
	hostRef = schema.NewUnion("host number or name",
		schema.When(schema.IsScalar(node.ScalarInt), schema.Int, Numbered, NameOrNumber.Number),
		schema.When(schema.IsScalar(node.ScalarString), schema.String, Named, NameOrNumber.Name),
	)
)

// Actions.
var (
	noActionGroup = schema.NewGroup[NoAction]("NoAction")

	keypressGroup = schema.NewGroup("KeypressAction",
		schema.Field("keys", schema.OneOrMany[NameOrNumber](unsignedName),
			func(a *KeypressAction) *schema.Multi[NameOrNumber] { return &a.Keys }),
	)

	toggleSmartShiftGroup = schema.NewGroup[ToggleSmartShift]("ToggleSmartShift")

	toggleHiresScrollGroup = schema.NewGroup[ToggleHiresScroll]("ToggleHiresScroll")

	cycleDPIGroup = schema.NewGroup("CycleDPI",
		schema.Field("dpis", schema.List(schema.Int), func(a *CycleDPI) *[]int { return &a.DPIs }),
		schema.OptionalField("sensor", schema.Int, func(a *CycleDPI) *schema.Optional[int] { return &a.Sensor }),
	)

	changeDPIGroup = schema.NewGroup("ChangeDPI",
		schema.Field("inc", schema.Int, func(a *ChangeDPI) *int { return &a.Inc }),
		schema.OptionalField("sensor", schema.Int, func(a *ChangeDPI) *schema.Optional[int] { return &a.Sensor }),
	)

	changeHostGroup = schema.NewGroup("ChangeHost",
		schema.Field("host", schema.Type[NameOrNumber](hostRef), func(a *ChangeHost) *NameOrNumber { return &a.Host }),
	)

	gestureActionGroup = schema.NewGroup("GestureAction",
		schema.OptionalField("gestures", schema.KeyedBy("direction", schema.String, schema.Type[Gesture](gestureType)),
			func(a *GestureAction) *schema.Optional[schema.Collection[string, Gesture]] { return &a.Gestures }),
	)

	basicActionType = schema.NewVariant("BasicAction", "type", basicActionArms[BasicAction]()...)

	actionType = schema.NewVariant("Action", "type",
		append(basicActionArms[Action](), schema.Case[Action]("Gestures", gestureActionGroup))...)
)

// basicActionArms lists the arms shared by Action and BasicAction.
func basicActionArms[T any]() []schema.Arm[T] {
	return []schema.Arm[T]{
		schema.Case[T]("None", noActionGroup),
		schema.Case[T]("Keypress", keypressGroup),
		schema.Case[T]("ToggleSmartShift", toggleSmartShiftGroup),
		schema.Case[T]("ToggleHiresScroll", toggleHiresScrollGroup),
		schema.Case[T]("CycleDPI", cycleDPIGroup),
		schema.Case[T]("ChangeDPI", changeDPIGroup),
		schema.Case[T]("ChangeHost", changeHostGroup),
	}
}

// Gestures.
var (
	noGestureGroup = schema.NewGroup("NoGesture",
		schema.OptionalField("threshold", schema.Int, func(g *NoGesture) *schema.Optional[int] { return &g.Threshold }),
	)

	axisGestureGroup = schema.NewGroup("AxisGesture",
		schema.OptionalField("threshold", schema.Int, func(g *AxisGesture) *schema.Optional[int] { return &g.Threshold }),
		schema.Field("axis", schema.Type[NameOrNumber](unsignedName), func(g *AxisGesture) *NameOrNumber { return &g.Axis }),
		schema.OptionalField("axis_multiplier", schema.Float,
			func(g *AxisGesture) *schema.Optional[float64] { return &g.AxisMultiplier }),
	)

	intervalGestureGroup = schema.NewGroup("IntervalGesture",
		intervalFields(func(g *IntervalGesture) *IntervalSettings { return &g.IntervalSettings })...)

	fewPixelsGestureGroup = schema.NewGroup("FewPixelsGesture",
		intervalFields(func(g *FewPixelsGesture) *IntervalSettings { return &g.IntervalSettings })...)

	releaseGestureGroup = schema.NewGroup("ReleaseGesture",
		triggerFields(func(g *ReleaseGesture) *TriggerSettings { return &g.TriggerSettings })...)

	thresholdGestureGroup = schema.NewGroup("ThresholdGesture",
		triggerFields(func(g *ThresholdGesture) *TriggerSettings { return &g.TriggerSettings })...)

	gestureType = schema.NewVariant("Gesture", "mode",
		schema.Case[Gesture]("NoPress", noGestureGroup),
		schema.Case[Gesture]("Axis", axisGestureGroup),
		schema.Case[Gesture]("OnInterval", intervalGestureGroup),
		schema.Case[Gesture]("OnFewPixels", fewPixelsGestureGroup),
		schema.Case[Gesture]("OnRelease", releaseGestureGroup),
		schema.Case[Gesture]("OnThreshold", thresholdGestureGroup),
	)
)

func intervalFields[T any](settings func(*T) *IntervalSettings) []schema.FieldSpec[T] {
	return []schema.FieldSpec[T]{
		schema.OptionalField("threshold", schema.Int,
			func(g *T) *schema.Optional[int] { return &settings(g).Threshold }),
		schema.OptionalField("action", schema.Type[BasicAction](basicActionType),
			func(g *T) *schema.Optional[BasicAction] { return &settings(g).Action }),
		schema.Field("interval", schema.Int,
			func(g *T) *int { return &settings(g).Interval }),
	}
}

func triggerFields[T any](settings func(*T) *TriggerSettings) []schema.FieldSpec[T] {
	return []schema.FieldSpec[T]{
		schema.OptionalField("threshold", schema.Int,
			func(g *T) *schema.Optional[int] { return &settings(g).Threshold }),
		schema.OptionalField("action", schema.Type[BasicAction](basicActionType),
			func(g *T) *schema.Optional[BasicAction] { return &settings(g).Action }),
	}
}

// Profiles and devices.
var (
	buttonGroup = schema.NewGroup("Button",
		schema.OptionalField("action", schema.Type[Action](actionType),
			func(b *Button) *schema.Optional[Action] { return &b.Action }),
	)

	smartShiftGroup = schema.NewGroup("SmartShift",
		schema.OptionalField("on", schema.Bool, func(s *SmartShift) *schema.Optional[bool] { return &s.On }),
		schema.OptionalField("threshold", schema.Uint, func(s *SmartShift) *schema.Optional[uint] { return &s.Threshold }),
	)

	hiresScrollGroup = schema.NewGroup("HiresScroll",
		schema.OptionalField("hires", schema.Bool, func(h *HiresScroll) *schema.Optional[bool] { return &h.Hires }),
		schema.OptionalField("invert", schema.Bool, func(h *HiresScroll) *schema.Optional[bool] { return &h.Invert }),
		schema.OptionalField("target", schema.Bool, func(h *HiresScroll) *schema.Optional[bool] { return &h.Target }),
		schema.OptionalField("up", schema.Type[Gesture](gestureType), func(h *HiresScroll) *schema.Optional[Gesture] { return &h.Up }),
		schema.OptionalField("down", schema.Type[Gesture](gestureType), func(h *HiresScroll) *schema.Optional[Gesture] { return &h.Down }),
	)

	hiresScrollSetting = schema.NewUnion("HiresScroll or boolean",
		schema.When(schema.IsScalar(node.ScalarBool), schema.Bool, HiresScrollFlag, HiresScrollSetting.Flag),
		schema.When(schema.IsMapping, schema.Type[HiresScroll](hiresScrollGroup), HiresScrollDetail, HiresScrollSetting.Detail),
	)

	thumbWheelGroup = schema.NewGroup("ThumbWheel",
		schema.OptionalField("divert", schema.Bool, func(w *ThumbWheel) *schema.Optional[bool] { return &w.Divert }),
		schema.OptionalField("invert", schema.Bool, func(w *ThumbWheel) *schema.Optional[bool] { return &w.Invert }),
		schema.OptionalField("left", schema.Type[Gesture](gestureType), func(w *ThumbWheel) *schema.Optional[Gesture] { return &w.Left }),
		schema.OptionalField("right", schema.Type[Gesture](gestureType), func(w *ThumbWheel) *schema.Optional[Gesture] { return &w.Right }),
		schema.OptionalField("proxy", schema.Type[BasicAction](basicActionType),
			func(w *ThumbWheel) *schema.Optional[BasicAction] { return &w.Proxy }),
		schema.OptionalField("touch", schema.Type[BasicAction](basicActionType),
			func(w *ThumbWheel) *schema.Optional[BasicAction] { return &w.Touch }),
		schema.OptionalField("tap", schema.Type[BasicAction](basicActionType),
			func(w *ThumbWheel) *schema.Optional[BasicAction] { return &w.Tap }),
	)

	profileGroup = schema.NewGroup("Profile",
		schema.OptionalField("dpi", schema.OneOrMany(schema.Int),
			func(p *Profile) *schema.Optional[schema.Multi[int]] { return &p.DPI }),
		schema.OptionalField("smartshift", schema.Type[SmartShift](smartShiftGroup),
			func(p *Profile) *schema.Optional[SmartShift] { return &p.SmartShift }),
		schema.OptionalField("hiresscroll", schema.Type[HiresScrollSetting](hiresScrollSetting),
			func(p *Profile) *schema.Optional[HiresScrollSetting] { return &p.HiresScroll }),
		schema.OptionalField("buttons", schema.KeyedBy("cid", schema.Uint16, schema.Type[Button](buttonGroup)),
			func(p *Profile) *schema.Optional[schema.Collection[uint16, Button]] { return &p.Buttons }),
		schema.OptionalField("thumbwheel", schema.Type[ThumbWheel](thumbWheelGroup),
			func(p *Profile) *schema.Optional[ThumbWheel] { return &p.ThumbWheel }),
	)

	deviceGroup = schema.NewGroup("Device",
		schema.Field("default_profile", schema.String, func(d *Device) *string { return &d.DefaultProfile }),
		schema.Field("profiles", schema.KeyedBy("name", schema.String, schema.Type[Profile](profileGroup)),
			func(d *Device) *schema.Collection[string, Profile] { return &d.Profiles }),
	).Check(checkDefaultProfile)

	// deviceSettings tells a Device from a bare Profile by its keys.
	deviceSettings = schema.NewUnion("Device or Profile",
		schema.Member[DeviceSettings](schema.HasAnyKey("default_profile", "profiles"), schema.Type[Device](deviceGroup)),
		schema.Member[DeviceSettings](schema.IsMapping, schema.Type[Profile](profileGroup)),
	)

	configGroup = schema.NewGroup("Config",
		schema.OptionalField("devices", schema.KeyedBy("name", schema.String, schema.Type[DeviceSettings](deviceSettings)),
			func(c *Config) *schema.Optional[schema.Collection[string, DeviceSettings]] { return &c.Devices }),
		schema.OptionalField("ignore", schema.SetOf(schema.Uint16),
			func(c *Config) *schema.Optional[schema.Set[uint16]] { return &c.Ignore }),
		schema.OptionalField("io_timeout", schema.FloatRange(0, MaxIOTimeout),
			func(c *Config) *schema.Optional[float64] { return &c.IOTimeout }),
	)
)

func checkDefaultProfile(d *Device) error {
	if d.Profiles.Has(d.DefaultProfile) {
		return nil
	}

	return &schema.FieldError{
		Field: "default_profile",
		Err:   &schema.DanglingReferenceError{Name: d.DefaultProfile, Target: "profiles"},
	}
}
