package config_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logidconf/config"
	"logidconf/internal/document"
	"logidconf/node"
	"logidconf/schema"
)

const fullDocument = `
devices:
  - name: "MX Master 3"
    default_profile: work
    profiles:
      - name: work
        dpi: 1000
        smartshift: {on: true, threshold: 30}
        hiresscroll: {hires: true, invert: false, target: false}
        buttons:
          - cid: 0xc3
            action:
              type: Gestures
              gestures:
                - {direction: Up, mode: OnRelease, action: {type: Keypress, keys: [KEY_UP]}}
                - {direction: Down, mode: OnInterval, interval: 20, action: {type: ChangeDPI, inc: -100, sensor: 0}}
                - {direction: None, mode: NoPress}
          - cid: 0xc4
            action: {type: ToggleSmartShift}
          - cid: 0x56
        thumbwheel:
          divert: true
          left: {mode: Axis, axis: REL_HWHEEL, axis_multiplier: -1}
          right: {mode: OnThreshold, threshold: 5, action: {type: ChangeHost, host: next}}
          tap: {type: CycleDPI, dpis: [400, 800, 1600]}
      - name: game
        dpi: [1600, 3200]
        hiresscroll: false
  - name: "MX Anywhere 3"
    dpi: 1200
ignore: [0xc52b, 0xc52b, 0x4082]
io_timeout: 60.5
`

func TestResolve_FullDocument(t *testing.T) {
	t.Parallel()

	cfg, diags, err := config.Resolve(parse(t, fullDocument))
	require.NoError(t, err)
	assert.Empty(t, diags.Warnings)
	require.Len(t, diags.Infos, 1, "the repeated product ID is dropped")
	assert.Equal(t, "duplicate_member", diags.Infos[0].Code)
	assert.Equal(t, "ignore[1]", diags.Infos[0].Path)
	assert.Equal(t, "repeated 50475 dropped", diags.Infos[0].Message)

	devices, ok := cfg.Devices.Get()
	require.True(t, ok)
	assert.Equal(t, []string{"MX Master 3", "MX Anywhere 3"}, devices.Keys())

	ds, ok := cfg.Device("MX Master 3")
	require.True(t, ok)

	dev, ok := ds.(config.Device)
	require.True(t, ok, "a mapping with profiles is a Device")
	assert.Equal(t, "work", dev.DefaultProfile)
	assert.Equal(t, []string{"work", "game"}, dev.Profiles.Keys())

	work, ok := config.ActiveProfile(ds)
	require.True(t, ok)

	buttons, _ := work.Buttons.Get()
	assert.Equal(t, []uint16{0xc3, 0xc4, 0x56}, buttons.Keys())

	gestureButton, _ := buttons.Get(0xc3)
	action, _ := gestureButton.Action.Get()
	gestures, ok := action.(config.GestureAction).Gestures.Get()
	require.True(t, ok)
	assert.Equal(t, []string{"Up", "Down", "None"}, gestures.Keys())

	down, _ := gestures.Get("Down")
	assert.Equal(t, config.IntervalGesture{IntervalSettings: config.IntervalSettings{
		Interval: 20,
		Action:   schema.Some[config.BasicAction](config.ChangeDPI{Inc: -100, Sensor: schema.Some(0)}),
	}}, down)

	plain, _ := buttons.Get(0x56)
	assert.False(t, plain.Action.IsSet())

	wheel, _ := work.ThumbWheel.Get()
	left, _ := wheel.Left.Get()
	assert.Equal(t, config.AxisGesture{Axis: config.Named("REL_HWHEEL"), AxisMultiplier: schema.Some(-1.0)}, left)
	assert.False(t, wheel.Proxy.IsSet())

	anywhere, ok := cfg.Device("MX Anywhere 3")
	require.True(t, ok)
	bare, ok := anywhere.(config.Profile)
	require.True(t, ok, "a mapping without profiles is a bare Profile")
	dpi, _ := bare.DPI.Get()
	assert.Equal(t, []int{1200}, dpi.Items())

	ignore, _ := cfg.Ignore.Get()
	assert.Equal(t, []uint16{0xc52b, 0x4082}, ignore.Items())
	assert.True(t, cfg.Ignored(0x4082))
	assert.False(t, cfg.Ignored(0xc52c))

	assert.Equal(t, 60500*time.Microsecond, cfg.Timeout())
}

func TestResolve_Empty(t *testing.T) {
	t.Parallel()

	cfg, diags, err := config.Resolve(parse(t, `{}`))
	require.NoError(t, err)
	assert.Empty(t, diags.Warnings)
	require.Len(t, diags.Infos, 1)
	assert.Equal(t, "default_io_timeout", diags.Infos[0].Code)
	assert.Equal(t, "io_timeout not set, using 500ms", diags.Infos[0].Message)
	assert.False(t, cfg.Devices.IsSet(), "absent devices means no persisted configuration")
	assert.Equal(t, config.DefaultIOTimeout, cfg.Timeout())

	_, ok := cfg.Device("anything")
	assert.False(t, ok)
}

func TestResolve_RoundTrip(t *testing.T) {
	t.Parallel()

	first, _, err := config.Resolve(parse(t, fullDocument))
	require.NoError(t, err)

	out, err := document.EncodeYAML(config.Encode(first))
	require.NoError(t, err)

	second, diags, err := config.Resolve(parse(t, string(out)))
	require.NoError(t, err, "re-resolving:\n%s", out)
	assert.Empty(t, diags.All())
	assert.Equal(t, first, second)

	again, err := document.EncodeYAML(config.Encode(second))
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again))
}

func TestResolve_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		path  string
		check func(t *testing.T, err error)
	}{
		{
			name: "dangling default profile",
			src: `
devices:
  - name: mouse
    default_profile: home
    profiles: [{name: work}]
`,
			path: "devices.mouse.default_profile",
			check: func(t *testing.T, err error) {
				var dr *schema.DanglingReferenceError
				require.ErrorAs(t, err, &dr)
				assert.Equal(t, "home", dr.Name)
				assert.Equal(t, "profiles", dr.Target)
			},
		},
		{
			name: "device missing default profile",
			src: `
devices:
  - name: mouse
    profiles: [{name: work}]
`,
			path: "devices.mouse",
			check: func(t *testing.T, err error) {
				var missing *schema.MissingFieldError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, "default_profile", missing.Field)
				assert.Equal(t, "Device", missing.Type)
			},
		},
		{
			name: "duplicate device",
			src: `
devices:
  - {name: mouse, dpi: 800}
  - {name: mouse, dpi: 900}
`,
			path: "devices.mouse",
			check: func(t *testing.T, err error) {
				var dup *schema.DuplicateKeyError
				require.ErrorAs(t, err, &dup)
				assert.Equal(t, "mouse", dup.Key)
			},
		},
		{
			name: "nested unknown variant",
			src: `
devices:
  - name: mouse1
    default_profile: default
    profiles:
      - name: default
        buttons:
          - {cid: 1, action: {type: Launch}}
`,
			path: "devices.mouse1.profiles.default.buttons[0].action",
			check: func(t *testing.T, err error) {
				var uv *schema.UnknownVariantError
				require.ErrorAs(t, err, &uv)
				assert.Equal(t, "Launch", uv.Value)
			},
		},
		{
			name: "device name quoted in path",
			src: `
devices:
  - {name: "MX Master 3", dpi: fast}
`,
			path: `devices["MX Master 3"].dpi`,
			check: func(t *testing.T, err error) {
				var tm *schema.TypeMismatchError
				require.ErrorAs(t, err, &tm, "a scalar commits to the single-value form")
				assert.Equal(t, "integer", tm.Expected)
			},
		},
		{
			name: "ignore out of range",
			src:  `{ignore: [70000]}`,
			path: "ignore[0]",
			check: func(t *testing.T, err error) {
				var iv *schema.InvalidValueError
				require.ErrorAs(t, err, &iv)
			},
		},
		{
			name: "root is not a mapping",
			src:  `[1, 2]`,
			path: "",
			check: func(t *testing.T, err error) {
				var tm *schema.TypeMismatchError
				require.ErrorAs(t, err, &tm)
				assert.Equal(t, "Config mapping", tm.Expected)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, _, err := config.Resolve(parse(t, tt.src))
			require.Error(t, err)
			assert.Nil(t, cfg, "resolution is all or nothing")
			assert.Equal(t, tt.path, schema.ErrorPath(err).String())
			tt.check(t, err)
		})
	}
}

func TestResolve_UnknownFieldPolicy(t *testing.T) {
	t.Parallel()

	src := `
devices:
  - name: mouse
    dpi: 800
    smartshift: {on: true, sensitivity: 4}
colour: blue
`

	cfg, diags, err := config.Resolve(parse(t, src))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	warnings := diags.Warnings
	require.Len(t, warnings, 2)
	assert.Equal(t, "devices.mouse.smartshift.sensitivity", warnings[0].Path)
	assert.Equal(t, "SmartShift", warnings[0].Type)
	assert.Equal(t, "colour", warnings[1].Path)

	_, diags, err = config.Resolve(parse(t, src), schema.WithUnknownFields(schema.UnknownFieldsIgnore))
	require.NoError(t, err)
	assert.Empty(t, diags.Warnings)

	_, _, err = config.Resolve(parse(t, src), schema.WithUnknownFields(schema.UnknownFieldsReject))
	var unknown *schema.UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "sensitivity", unknown.Field)
	assert.Equal(t, "devices.mouse.smartshift", schema.ErrorPath(err).String())
}

func TestActiveProfile(t *testing.T) {
	t.Parallel()

	p, ok := config.ActiveProfile(config.Profile{DPI: schema.Some(schema.One(800))})
	require.True(t, ok)
	assert.True(t, p.DPI.IsSet())

	profiles, err := schema.NewCollection(schema.Entry[string, config.Profile]{Key: "work"})
	require.NoError(t, err)

	_, ok = config.ActiveProfile(config.Device{DefaultProfile: "work", Profiles: profiles})
	assert.True(t, ok)

	_, ok = config.ActiveProfile(config.Device{DefaultProfile: "home", Profiles: profiles})
	assert.False(t, ok)

	_, ok = config.ActiveProfile(nil)
	assert.False(t, ok)
}

func TestEncodeAction(t *testing.T) {
	t.Parallel()

	a := config.KeypressAction{Keys: schema.Many(config.Named("KEY_LEFTMETA"), config.Numbered(30))}

	out, err := document.EncodeYAML(config.EncodeAction(a))
	require.NoError(t, err)
	assert.Equal(t, "type: Keypress\nkeys:\n  - KEY_LEFTMETA\n  - 30\n", string(out))

	g := config.ThresholdGesture{TriggerSettings: config.TriggerSettings{Threshold: schema.Some(5)}}
	out, err = document.EncodeYAML(config.EncodeGesture(g))
	require.NoError(t, err)
	assert.Equal(t, "mode: OnThreshold\nthreshold: 5\n", string(out))
}

func TestResolve_IOTimeout(t *testing.T) {
	t.Parallel()

	yamlDoc := func(src string) func(t *testing.T) node.Node {
		return func(t *testing.T) node.Node { return parse(t, src) }
	}
	jsonDoc := func(src string) func(t *testing.T) node.Node {
		return func(t *testing.T) node.Node {
			n, err := document.ParseJSON([]byte(src))
			require.NoError(t, err)

			return n
		}
	}

	tests := []struct {
		name    string
		doc     func(t *testing.T) node.Node
		invalid bool
		want    time.Duration
	}{
		{name: "zero", doc: yamlDoc("io_timeout: 0"), want: 0},
		{name: "fraction", doc: yamlDoc("io_timeout: 0.5"), want: 500 * time.Microsecond},
		{name: "negative", doc: yamlDoc("io_timeout: -50"), invalid: true},
		{name: "not a number", doc: yamlDoc("io_timeout: .nan"), invalid: true},
		{name: "negative infinity", doc: yamlDoc("io_timeout: -.inf"), invalid: true},
		{name: "beyond a duration", doc: jsonDoc(`{"io_timeout": 1e300}`), invalid: true},
		{name: "overflows to infinity", doc: jsonDoc(`{"io_timeout": 1e400}`), invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, _, err := config.Resolve(tt.doc(t))
			if !tt.invalid {
				require.NoError(t, err)
				assert.Equal(t, tt.want, cfg.Timeout())

				return
			}

			assert.Nil(t, cfg)

			var iv *schema.InvalidValueError
			require.ErrorAs(t, err, &iv)
			assert.Equal(t, "io_timeout", schema.ErrorPath(err).String())
		})
	}

	_, _, err := config.Resolve(parse(t, "io_timeout: -50"))
	require.EqualError(t, err, "io_timeout: invalid value -50: must be between 0 and 9.223372036854e+12")

	cfg, _, err := config.Resolve(parse(t, "io_timeout: 9223372036854"))
	require.NoError(t, err)
	assert.Greater(t, cfg.Timeout(), 2562047*time.Hour)
}

func TestConfig_TimeoutClamps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ms   float64
		want time.Duration
	}{
		{"negative", -5, 0},
		{"not a number", math.NaN(), config.DefaultIOTimeout},
		{"in range", 60.5, 60500 * time.Microsecond},
	}

	for _, tt := range tests {
		cfg := &config.Config{IOTimeout: schema.Some(tt.ms)}
		assert.Equal(t, tt.want, cfg.Timeout(), tt.name)
	}

	huge := &config.Config{IOTimeout: schema.Some(math.Inf(1))}
	assert.Greater(t, huge.Timeout(), time.Duration(0), "never wraps negative")
}
