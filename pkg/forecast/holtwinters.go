package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"order-forecast/pkg/dates"
	"order-forecast/pkg/models"
)

// ErrDegenerateSeries is returned when a history cannot be fitted.
var ErrDegenerateSeries = errors.New("degenerate series")

// Fitter trains a model on a dense daily history.
type Fitter interface {
	Fit(history []models.OrderDay) (Predictor, error)
}

// Predictor projects a fitted model onto days after its history.
type Predictor interface {
	Predict(days []time.Time) ([]models.ForecastPoint, error)
}

// HoltWinters is additive triple exponential smoothing with a damped trend.
// Histories shorter than two seasons are fitted without the seasonal component.
type HoltWinters struct {
	Alpha  float64 // level
	Beta   float64 // trend
	Gamma  float64 // seasonal
	Phi    float64 // trend damping, 1 = linear
	Season int     // days
}

// NewHoltWinters returns the weekly model with the default smoothing parameters.
func NewHoltWinters() HoltWinters {
	return HoltWinters{Alpha: 0.3, Beta: 0.05, Gamma: 0.1, Phi: 0.98, Season: 7}
}

type fitted struct {
	model    HoltWinters
	last     time.Time
	n        int
	level    float64
	trend    float64
	seasonal []float64 // nil when fitted without seasonality
}

// Fit implements Fitter.
func (hw HoltWinters) Fit(history []models.OrderDay) (Predictor, error) {
	if len(history) < 2 {
		return nil, fmt.Errorf("%w: %d observations", ErrDegenerateSeries, len(history))
	}
	y := make([]float64, len(history))
	for i, d := range history {
		if math.IsNaN(d.Qty) || math.IsInf(d.Qty, 0) {
			return nil, fmt.Errorf("%w: non-finite value on %s", ErrDegenerateSeries, d.Date)
		}
		y[i] = d.Qty
	}
	last, err := dates.Parse(history[len(history)-1].Date)
	if err != nil {
		return nil, err
	}

	f := &fitted{model: hw, last: last, n: len(y)}
	if hw.Season > 1 && len(y) >= 2*hw.Season {
		f.fitSeasonal(y)
	} else {
		f.fitTrend(y)
	}
	return f, nil
}

func (f *fitted) fitTrend(y []float64) {
	m := f.model
	f.level, f.trend = y[0], y[1]-y[0]
	for _, v := range y[1:] {
		prev := f.level
		f.level = m.Alpha*v + (1-m.Alpha)*(f.level+m.Phi*f.trend)
		f.trend = m.Beta*(f.level-prev) + (1-m.Beta)*m.Phi*f.trend
	}
}

func (f *fitted) fitSeasonal(y []float64) {
	m, p := f.model, f.model.Season
	first, second := mean(y[:p]), mean(y[p:2*p])
	trend := (second - first) / float64(p)
	centre := float64(p-1) / 2

	f.seasonal = make([]float64, p)
	for i := range p {
		f.seasonal[i] = y[i] - (first + (float64(i)-centre)*trend)
	}
	// level at t = -1
	f.level, f.trend = first-(centre+1)*trend, trend

	for t, v := range y {
		s := f.seasonal[t%p]
		prev := f.level
		f.level = m.Alpha*(v-s) + (1-m.Alpha)*(f.level+m.Phi*f.trend)
		f.trend = m.Beta*(f.level-prev) + (1-m.Beta)*m.Phi*f.trend
		f.seasonal[t%p] = m.Gamma*(v-f.level) + (1-m.Gamma)*s
	}
}

// Predict implements Predictor. Every day must come after the fitted history.
func (f *fitted) Predict(days []time.Time) ([]models.ForecastPoint, error) {
	out := make([]models.ForecastPoint, 0, len(days))
	for _, d := range days {
		h := dates.DaysBetween(f.last, d)
		if h < 1 {
			return nil, fmt.Errorf("predict %s: not after history end %s", dates.ISO(d), dates.ISO(f.last))
		}
		v := f.level + f.damped(h)*f.trend
		if f.seasonal != nil {
			v += f.seasonal[(f.n-1+h)%len(f.seasonal)]
		}
		out = append(out, models.ForecastPoint{Date: dates.ISO(d), Qty: v})
	}
	return out, nil
}

// damped is phi + phi^2 + ... + phi^h.
func (f *fitted) damped(h int) float64 {
	phi := f.model.Phi
	if phi == 1 {
		return float64(h)
	}
	return phi * (1 - math.Pow(phi, float64(h))) / (1 - phi)
}

func mean(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}
