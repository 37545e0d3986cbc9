// Package form models the scatter tool window: the selection pair editor,
// the scale and rotation spin boxes, the toggles and the scatter action.
// A host UI binds its widgets to a Tool; the Tool owns no widgets itself.
package form

import (
	"errors"
	"fmt"
	gomath "math"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/vertex-scatter/internal/config"
	"github.com/Faultbox/vertex-scatter/internal/logger"
	"github.com/Faultbox/vertex-scatter/internal/scatter"
	"github.com/Faultbox/vertex-scatter/pkg/host"
	"github.com/Faultbox/vertex-scatter/pkg/math"
)

// Window titles.
const (
	TitleReady            = "Scatter Tool"
	TitleInvalidSelection = "Please Select Only Two Objects to Use This Tool"
)

const (
	sourcePrefix = "Object to Scatter With:"
	targetPrefix = "Object to Scatter To:"

	// Decimals shown by the scale spin boxes.
	scaleDecimals = 2
)

// Axis selects a rotation spin-box pair.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis letter.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Tool is the state behind the scatter window.
type Tool struct {
	host      host.Scene
	scatterer *scatter.Scatterer
	prefs     *config.Config
	log       *zap.Logger

	title  string
	status string
	pair   scatter.SelectionPair

	minScale, maxScale   float64
	minRotate, maxRotate [3]int
	align, preview       bool
	seed                 uint64
	degenerate           scatter.DegeneratePolicy

	// Set by Open; tools built with New never write preferences.
	persist  bool
	savePath string
}

// New opens the tool against a host. The title reports whether exactly two
// objects are selected; the pair stays empty until AddSelection.
// A nil prefs uses config.Default, a nil log the package logger.
func New(h host.Scene, prefs *config.Config, log *zap.Logger) (*Tool, error) {
	if prefs == nil {
		prefs = config.Default()
	}
	if log == nil {
		log = logger.Log
	}
	sc, err := prefs.ScatterConfig()
	if err != nil {
		return nil, fmt.Errorf("form defaults: %w", err)
	}

	t := &Tool{
		host:      h,
		scatterer: scatter.New(h, log),
		prefs:     prefs,
		log:       log.Named("form"),
	}
	t.load(sc)

	if _, err := scatter.ReadSelection(h); err != nil {
		t.title = TitleInvalidSelection
		t.log.Info("tool opened without a valid selection", zap.Error(err))
	} else {
		t.title = TitleReady
	}
	return t, nil
}

// load copies a snapshot into the fields, clamping to the spin-box limits.
func (t *Tool) load(sc scatter.Config) {
	t.SetMinScale(sc.MinScale)
	t.SetMaxScale(sc.MaxScale)
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		t.SetMinRotate(a, int(gomath.Round(component(sc.MinRotate, a))))
		t.SetMaxRotate(a, int(gomath.Round(component(sc.MaxRotate, a))))
	}
	t.align = sc.AlignToSurface
	t.preview = sc.PreviewOnly
	t.seed = sc.Seed
	t.degenerate = sc.Degenerate
}

// Title returns the window title.
func (t *Tool) Title() string { return t.title }

// Status returns the message of the last action.
func (t *Tool) Status() string { return t.status }

// Pair returns the current selection pair.
func (t *Tool) Pair() scatter.SelectionPair { return t.pair }

// Prefs returns the preferences, updated with the last successful run.
func (t *Tool) Prefs() *config.Config { return t.prefs }

// State returns the orchestrator state of the last run.
func (t *Tool) State() scatter.State { return t.scatterer.State() }

// SourceLabel returns the "scatter with" label text.
func (t *Tool) SourceLabel() string { return label(sourcePrefix, t.pair.Source) }

// TargetLabel returns the "scatter to" label text.
func (t *Tool) TargetLabel() string { return label(targetPrefix, t.pair.Target) }

func label(prefix string, id host.ObjectID) string {
	if id == "" {
		return prefix
	}
	return prefix + " " + string(id)
}

// AddSelection loads the host selection into the pair.
func (t *Tool) AddSelection() error {
	pair, err := scatter.ReadSelection(t.host)
	if err != nil {
		t.title = TitleInvalidSelection
		t.status = err.Error()
		t.log.Warn("add selection", zap.Error(err))
		return err
	}
	t.title = TitleReady
	t.pair = pair
	t.status = ""
	t.log.Debug("selection added", zap.Stringer("pair", pair))
	return nil
}

// SwapSelection exchanges the scatter object and the target.
func (t *Tool) SwapSelection() {
	t.pair = t.pair.Swap()
	t.log.Debug("selection swapped", zap.Stringer("pair", t.pair))
}

// SetSource sets the scatter object from a text field.
func (t *Tool) SetSource(name string) {
	t.pair.Source = host.ObjectID(strings.TrimSpace(name))
}

// SetTarget sets the target mesh from a text field.
func (t *Tool) SetTarget(name string) {
	t.pair.Target = host.ObjectID(strings.TrimSpace(name))
}

// SetMinScale sets the minimum scale spin box.
func (t *Tool) SetMinScale(v float64) { t.minScale = t.clampScale(v) }

// SetMaxScale sets the maximum scale spin box.
func (t *Tool) SetMaxScale(v float64) { t.maxScale = t.clampScale(v) }

// MinScale returns the minimum scale spin box value.
func (t *Tool) MinScale() float64 { return t.minScale }

// MaxScale returns the maximum scale spin box value.
func (t *Tool) MaxScale() float64 { return t.maxScale }

// StepScale moves the min (upper false) or max scale spin box by n steps.
func (t *Tool) StepScale(upper bool, n int) {
	step := float64(n) * t.prefs.Limits.ScaleStep
	if upper {
		t.SetMaxScale(t.maxScale + step)
	} else {
		t.SetMinScale(t.minScale + step)
	}
}

// SetMinRotate sets the minimum rotation spin box of an axis, in degrees.
func (t *Tool) SetMinRotate(a Axis, deg int) { t.minRotate[a] = t.clampRotate(deg) }

// SetMaxRotate sets the maximum rotation spin box of an axis, in degrees.
func (t *Tool) SetMaxRotate(a Axis, deg int) { t.maxRotate[a] = t.clampRotate(deg) }

// MinRotate returns the minimum rotation of an axis.
func (t *Tool) MinRotate(a Axis) int { return t.minRotate[a] }

// MaxRotate returns the maximum rotation of an axis.
func (t *Tool) MaxRotate(a Axis) int { return t.maxRotate[a] }

// SetAlign toggles surface alignment.
func (t *Tool) SetAlign(on bool) { t.align = on }

// SetPreview toggles preview mode.
func (t *Tool) SetPreview(on bool) { t.preview = on }

// SetSeed fixes the jitter seed; zero draws a new one per run.
func (t *Tool) SetSeed(seed uint64) { t.seed = seed }

func (t *Tool) clampScale(v float64) float64 {
	l := t.prefs.Limits
	p := gomath.Pow(10, scaleDecimals)
	v = gomath.Round(v*p) / p
	return gomath.Min(gomath.Max(v, l.ScaleMin), l.ScaleMax)
}

func (t *Tool) clampRotate(deg int) int {
	l := t.prefs.Limits
	return min(max(deg, int(gomath.Ceil(l.RotateMin))), int(gomath.Floor(l.RotateMax)))
}

// Snapshot reads every field into an immutable scatter config.
func (t *Tool) Snapshot() scatter.Config {
	return scatter.Config{
		MinScale:       t.minScale,
		MaxScale:       t.maxScale,
		MinRotate:      vec(t.minRotate),
		MaxRotate:      vec(t.maxRotate),
		AlignToSurface: t.align,
		PreviewOnly:    t.preview,
		Seed:           t.seed,
		Degenerate:     t.degenerate,
	}
}

// Scatter runs the scatter with the current fields and pair. The outcome is
// also reported through Status; errors never leave the host in a partial
// state.
func (t *Tool) Scatter() (scatter.Result, error) {
	if t.pair.Source == "" || t.pair.Target == "" {
		err := fmt.Errorf("%w: add a selection first", scatter.ErrInvalidSelection)
		t.status = err.Error()
		return scatter.Result{}, err
	}

	cfg := t.Snapshot()
	res, err := t.scatterer.Run(t.pair, cfg)
	if err != nil {
		t.status = statusFor(err)
		return res, err
	}

	t.prefs.Remember(cfg)
	t.save()
	switch {
	case cfg.PreviewOnly:
		t.status = fmt.Sprintf("Previewed %d instances of %s", res.Created, t.pair.Source)
	case len(res.Skipped) > 0:
		t.status = fmt.Sprintf("Scattered %d instances of %s onto %s (%d vertices skipped)",
			res.Net(), t.pair.Source, t.pair.Target, len(res.Skipped))
	default:
		t.status = fmt.Sprintf("Scattered %d instances of %s onto %s", res.Net(), t.pair.Source, t.pair.Target)
	}
	return res, nil
}

func statusFor(err error) string {
	switch {
	case errors.Is(err, scatter.ErrInvalidMesh):
		return "Please ensure the object you select is a transform: " + err.Error()
	case errors.Is(err, scatter.ErrInvalidConfig):
		return "Check the minimum and maximum values: " + err.Error()
	default:
		return "Scatter failed: " + err.Error()
	}
}

func component(v math.Vec3, a Axis) float64 {
	switch a {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	default:
		return v.X
	}
}

func vec(r [3]int) math.Vec3 {
	return math.Vec3{X: float64(r[AxisX]), Y: float64(r[AxisY]), Z: float64(r[AxisZ])}
}
