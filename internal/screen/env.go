package screen

import (
	"context"

	"github.com/abhisek/scorebook/internal/charts"
	"github.com/abhisek/scorebook/internal/logger"
	"github.com/abhisek/scorebook/internal/scores"
)

// Env is what screens share: the tracker every view reads from and every
// action goes through, and the chart surfaces.
type Env struct {
	Ctx     context.Context
	Tracker *scores.Tracker
	Charts  *charts.Registry
	Log     *logger.Logger

	// Colors returns the series colour source for one chart rebuild.
	// Nil means fresh random colours on every rebuild.
	Colors func() charts.ColorFunc
}

// LineColors returns the colour source for a rebuild.
func (e *Env) LineColors() charts.ColorFunc {
	if e.Colors != nil {
		return e.Colors()
	}
	return charts.RandomColors(nil)
}

// Context returns Ctx, or context.Background when unset.
func (e *Env) Context() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}
