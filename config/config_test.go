package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logidconf/config"
	"logidconf/internal/document"
	"logidconf/node"
	"logidconf/schema"
)

func parse(t *testing.T, src string) node.Node {
	t.Helper()

	n, err := document.ParseYAML([]byte(src))
	require.NoError(t, err)

	return n
}

func TestResolveAction_Keypress(t *testing.T) {
	t.Parallel()

	a, diags, err := config.ResolveAction(parse(t, `{"type": "Keypress", "keys": "KEY_A"}`))
	require.NoError(t, err)
	assert.Empty(t, diags.Warnings)

	kp, ok := a.(config.KeypressAction)
	require.True(t, ok, "got %T", a)
	assert.False(t, kp.Keys.IsList())

	key, ok := kp.Keys.Single()
	require.True(t, ok)
	assert.Equal(t, config.Named("KEY_A"), key)
}

func TestResolveAction_KeypressList(t *testing.T) {
	t.Parallel()

	a, _, err := config.ResolveAction(parse(t, `{type: Keypress, keys: [KEY_LEFTCTRL, 46]}`))
	require.NoError(t, err)

	kp := a.(config.KeypressAction)
	assert.True(t, kp.Keys.IsList())
	assert.Equal(t, []config.NameOrNumber{config.Named("KEY_LEFTCTRL"), config.Numbered(46)}, kp.Keys.Items())

	_, _, err = config.ResolveAction(parse(t, `{type: Keypress, keys: [-1]}`))
	var iv *schema.InvalidValueError
	require.ErrorAs(t, err, &iv)
	assert.Equal(t, "keys[0]", schema.ErrorPath(err).String())
}

func TestResolveGesture_Threshold(t *testing.T) {
	t.Parallel()

	g, _, err := config.ResolveGesture(parse(t,
		`{"mode": "OnThreshold", "threshold": 20, "action": {"type": "ChangeDPI", "inc": 100}}`))
	require.NoError(t, err)

	want := config.ThresholdGesture{TriggerSettings: config.TriggerSettings{
		Threshold: schema.Some(20),
		Action:    schema.Some[config.BasicAction](config.ChangeDPI{Inc: 100}),
	}}
	assert.Equal(t, want, g)

	action, _ := g.(config.ThresholdGesture).Action.Get()
	assert.False(t, action.(config.ChangeDPI).Sensor.IsSet())
}

func TestResolveGesture_Arms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want config.Gesture
	}{
		{
			name: "no press",
			src:  `{mode: NoPress}`,
			want: config.NoGesture{},
		},
		{
			name: "axis by name",
			src:  `{mode: Axis, axis: REL_WHEEL_HI_RES, axis_multiplier: 0.5}`,
			want: config.AxisGesture{Axis: config.Named("REL_WHEEL_HI_RES"), AxisMultiplier: schema.Some(0.5)},
		},
		{
			name: "interval",
			src:  `{mode: OnInterval, interval: 50, action: {type: ToggleSmartShift}}`,
			want: config.IntervalGesture{IntervalSettings: config.IntervalSettings{
				Interval: 50,
				Action:   schema.Some[config.BasicAction](config.ToggleSmartShift{}),
			}},
		},
		{
			name: "few pixels is its own arm",
			src:  `{mode: OnFewPixels, interval: 3}`,
			want: config.FewPixelsGesture{IntervalSettings: config.IntervalSettings{Interval: 3}},
		},
		{
			name: "release",
			src:  `{mode: OnRelease, action: {type: ChangeHost, host: 2}}`,
			want: config.ReleaseGesture{TriggerSettings: config.TriggerSettings{
				Action: schema.Some[config.BasicAction](config.ChangeHost{Host: config.Numbered(2)}),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _, err := config.ResolveGesture(parse(t, tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveButtons_DuplicateCID(t *testing.T) {
	t.Parallel()

	_, _, err := config.ResolveProfile(parse(t, `
buttons:
  - {cid: 1, action: {type: None}}
  - {cid: 1, action: {type: ToggleSmartShift}}
`))

	var dup *schema.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, uint16(1), dup.Key)
	assert.Equal(t, "buttons[1]", schema.ErrorPath(err).String())
	assert.EqualError(t, err, "buttons[1]: duplicate cid 1")
}

func TestResolveProfile_AbsentDPI(t *testing.T) {
	t.Parallel()

	p, diags, err := config.ResolveProfile(parse(t, `{smartshift: {on: true, threshold: 30}}`))
	require.NoError(t, err)
	assert.Empty(t, diags.Warnings)
	assert.False(t, p.DPI.IsSet())

	ss, ok := p.SmartShift.Get()
	require.True(t, ok)
	assert.Equal(t, schema.Some(true), ss.On)
	assert.Equal(t, schema.Some[uint](30), ss.Threshold)
}

func TestResolveProfile_DPI(t *testing.T) {
	t.Parallel()

	p, _, err := config.ResolveProfile(parse(t, `{dpi: 1600}`))
	require.NoError(t, err)
	dpi, _ := p.DPI.Get()
	assert.Equal(t, []int{1600}, dpi.Items())
	assert.False(t, dpi.IsList())

	p, _, err = config.ResolveProfile(parse(t, `{dpi: [800, 1600]}`))
	require.NoError(t, err)
	dpi, _ = p.DPI.Get()
	assert.Equal(t, []int{800, 1600}, dpi.Items())
	assert.True(t, dpi.IsList())

	_, _, err = config.ResolveProfile(parse(t, `{dpi: {x: 1}}`))
	var nm *schema.NoMatchingAlternativeError
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, "dpi", schema.ErrorPath(err).String())
}

func TestResolveProfile_HiresScroll(t *testing.T) {
	t.Parallel()

	p, _, err := config.ResolveProfile(parse(t, `{hiresscroll: false}`))
	require.NoError(t, err)
	hs, _ := p.HiresScroll.Get()
	on, isFlag := hs.Flag()
	assert.True(t, isFlag)
	assert.False(t, on)
	_, isDetail := hs.Detail()
	assert.False(t, isDetail)

	p, _, err = config.ResolveProfile(parse(t, `
hiresscroll:
  hires: true
  up: {mode: OnInterval, interval: 2, action: {type: CycleDPI, dpis: [400, 800]}}
`))
	require.NoError(t, err)
	hs, _ = p.HiresScroll.Get()
	detail, ok := hs.Detail()
	require.True(t, ok)
	assert.Equal(t, schema.Some(true), detail.Hires)
	assert.False(t, detail.Down.IsSet())

	up, _ := detail.Up.Get()
	action, _ := up.(config.IntervalGesture).Action.Get()
	assert.Equal(t, config.CycleDPI{DPIs: []int{400, 800}}, action)

	_, _, err = config.ResolveProfile(parse(t, `{hiresscroll: "yes"}`))
	var nm *schema.NoMatchingAlternativeError
	require.ErrorAs(t, err, &nm)
}

func TestRecursionBound(t *testing.T) {
	t.Parallel()

	doc := parse(t, `
type: Gestures
gestures:
  - direction: Up
    mode: OnRelease
    action:
      type: Gestures
      gestures: []
`)

	_, _, err := config.ResolveAction(doc)

	var uv *schema.UnknownVariantError
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, "Gestures", uv.Value)
	assert.Equal(t, "BasicAction", uv.Type)
	assert.Equal(t, config.BasicActionTypes(), uv.Valid)
	assert.NotContains(t, uv.Valid, "Gestures")
	assert.Equal(t, "gestures.Up.action", schema.ErrorPath(err).String())

	_, _, err = config.ResolveBasicAction(parse(t, `{type: Gestures}`))
	require.ErrorAs(t, err, &uv)

	_, _, err = config.ResolveProfile(parse(t, `{thumbwheel: {tap: {type: Gestures}}}`))
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, "thumbwheel.tap", schema.ErrorPath(err).String())
}

func TestActionTypes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"None", "Keypress", "ToggleSmartShift", "ToggleHiresScroll",
		"CycleDPI", "ChangeDPI", "ChangeHost", "Gestures",
	}, config.ActionTypes())
	assert.Equal(t, config.ActionTypes()[:7], config.BasicActionTypes())
	assert.Equal(t, []string{
		"NoPress", "Axis", "OnInterval", "OnFewPixels", "OnRelease", "OnThreshold",
	}, config.GestureModes())

	var a config.Action = config.GestureAction{}
	_, basic := a.(config.BasicAction)
	assert.False(t, basic)
}

func TestResolveAction_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{
			name: "missing type",
			src:  `{keys: KEY_A}`,
			msg:  `missing discriminant field "type" of Action`,
		},
		{
			name: "unknown type",
			src:  `{type: Macro}`,
			msg: `unknown variant "Macro" for "type" of Action (valid: "None", "Keypress", "ToggleSmartShift", ` +
				`"ToggleHiresScroll", "CycleDPI", "ChangeDPI", "ChangeHost", "Gestures")`,
		},
		{
			name: "missing payload",
			src:  `{type: ChangeDPI}`,
			msg:  `missing required field "inc" of ChangeDPI`,
		},
		{
			name: "bad payload",
			src:  `{type: CycleDPI, dpis: [800, fast]}`,
			msg:  `dpis[1]: expected integer, got "fast"`,
		},
		{
			name: "bad host",
			src:  `{type: ChangeHost, host: true}`,
			msg:  `host: boolean true matches no alternative of host number or name (expected one of: "integer", "string")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := config.ResolveAction(parse(t, tt.src))
			require.EqualError(t, err, tt.msg)
		})
	}
}

func TestResolveButton_Unknown(t *testing.T) {
	t.Parallel()

	b, diags, err := config.ResolveButton(parse(t, `{cid: 0x53, action: {type: None, repeat: true}}`))
	require.NoError(t, err)
	assert.Equal(t, config.Button{Action: schema.Some[config.Action](config.NoAction{})}, b)

	// cid is only claimed inside a buttons collection.
	require.Len(t, diags.Warnings, 2)
	assert.Equal(t, "action.repeat", diags.Warnings[0].Path)
	assert.Equal(t, "NoAction", diags.Warnings[0].Type)
	assert.Equal(t, "cid", diags.Warnings[1].Path)
	assert.Equal(t, "Button", diags.Warnings[1].Type)
}

func TestResolveButton_AbsentAction(t *testing.T) {
	t.Parallel()

	b, _, err := config.ResolveButton(parse(t, `{}`))
	require.NoError(t, err)
	assert.False(t, b.Action.IsSet())
}
