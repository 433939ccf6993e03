package viscos

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/viscos/viscos/gizmo"
)

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inOutQuad":  ease.InOutQuad,
	"inOutCubic": ease.InOutCubic,
	"inOutSine":  ease.InOutSine,
	"outBounce":  ease.OutBounce,
}

// TraceTween moves a trace's end between From and To and back again.
type TraceTween struct {
	Trace *gizmo.Trace
	From  mgl32.Vec3
	To    mgl32.Vec3

	tween    *gween.Tween
	forward  bool
	duration float32
	easing   ease.TweenFunc
}

// NewTraceTween animates trace.End from its current value to `to`. An
// unknown easing name falls back to linear.
func NewTraceTween(trace *gizmo.Trace, to mgl32.Vec3, duration float32, easing string) *TraceTween {
	fn, ok := easings[easing]
	if !ok {
		fn = ease.Linear
	}
	return &TraceTween{
		Trace:    trace,
		From:     trace.End,
		To:       to,
		tween:    gween.New(0, 1, duration, fn),
		forward:  true,
		duration: duration,
		easing:   fn,
	}
}

// Advance steps the tween by dt seconds and writes the new end point.
func (tt *TraceTween) Advance(dt float32) {
	t, done := tt.tween.Update(dt)
	if !tt.forward {
		t = 1 - t
	}
	tt.Trace.SetEnd(lerp(tt.From, tt.To, t))

	if done {
		tt.forward = !tt.forward
		tt.tween = gween.New(0, 1, tt.duration, tt.easing)
	}
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Tweens is the set of running trace animations.
type Tweens struct {
	list []*TraceTween
}

func (t *Tweens) Add(tween *TraceTween) {
	t.list = append(t.list, tween)
}

// RemoveTrace stops every tween driving trace.
func (t *Tweens) RemoveTrace(trace *gizmo.Trace) {
	t.list = slices.DeleteFunc(t.list, func(tt *TraceTween) bool {
		return tt.Trace == trace
	})
}

func (t *Tweens) Len() int {
	return len(t.list)
}

type AnimationModule struct{}

func (AnimationModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Tweens{})
	app.UseSystem(
		System(TweenSystem).
			InStage(Update),
	)
}

func TweenSystem(time *Time, tweens *Tweens) {
	dt := time.Seconds()
	if dt <= 0 {
		return
	}
	for _, tt := range tweens.list {
		tt.Advance(dt)
	}
}
