package viscos

import (
	"time"
)

type Time struct {
	Time time.Time
	Dt   time.Duration
	// Elapsed is the sum of all Dt so far.
	Elapsed time.Duration

	fixed time.Duration
}

// TimeModule tracks frame time. With a non-zero FixedStep every frame
// advances by exactly that amount instead of the wall clock.
type TimeModule struct {
	FixedStep time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time:  time.Now(),
		Dt:    0,
		fixed: mod.FixedStep,
	})
	cmd.UseSystem(System(timeSystem).InStage(PreUpdate))
}

func timeSystem(timeResource *Time) {
	if timeResource.fixed > 0 {
		timeResource.Dt = timeResource.fixed
		timeResource.Time = timeResource.Time.Add(timeResource.fixed)
	} else {
		now := time.Now()
		timeResource.Dt = now.Sub(timeResource.Time)
		timeResource.Time = now
	}
	timeResource.Elapsed += timeResource.Dt
}

// Seconds is Dt as float seconds.
func (t *Time) Seconds() float32 {
	return float32(t.Dt.Seconds())
}
