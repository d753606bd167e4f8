package constraint

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyWindow reports a degenerate date window (lower bound not strictly
// before upper bound). Callers are expected to avoid it by anchoring windows
// with a non-degenerate offset; it is surfaced so that misuse fails loudly
// instead of producing an implausible date.
var ErrEmptyWindow = errors.New("empty date window")

// DateWindow is a half-open interval [Lower, Upper) of calendar days from
// which a date may be drawn.
type DateWindow struct {
	Lower time.Time
	Upper time.Time
}

// Random draws a uniformly distributed date (whole days) from the window.
func (w DateWindow) Random(e *Engine) (time.Time, error) {
	days := int(w.Upper.Sub(w.Lower).Hours() / 24)
	if days <= 0 {
		return time.Time{}, fmt.Errorf("%w: [%s, %s)", ErrEmptyWindow,
			w.Lower.Format("2006-01-02"), w.Upper.Format("2006-01-02"))
	}
	return w.Lower.AddDate(0, 0, e.rng.Intn(days)), nil
}

// DateBetween draws a date from [lower, upper).
func (e *Engine) DateBetween(lower, upper time.Time) (time.Time, error) {
	return DateWindow{Lower: lower, Upper: upper}.Random(e)
}

// BirthDate draws a date of birth between MaxPatientAgeYears and
// MinPatientAgeYears before now.
func (e *Engine) BirthDate() (time.Time, error) {
	now := e.now()
	return e.DateBetween(
		now.AddDate(0, 0, -MaxPatientAgeYears*365),
		now.AddDate(0, 0, -MinPatientAgeYears*365),
	)
}

// DiagnosisDate draws a diagnosis date within the lookback horizon, never
// in the future.
func (e *Engine) DiagnosisDate() (time.Time, error) {
	now := e.now()
	return e.DateBetween(now.AddDate(0, 0, -DiagnosisLookbackDays), now)
}

// DateAfter draws a date from [anchor, now). When the anchor is today or
// later the window degenerates; the anchor itself is returned, which keeps
// the ordering invariant (date >= anchor) without failing the entity.
func (e *Engine) DateAfter(anchor time.Time) time.Time {
	d, err := e.DateBetween(anchor, e.now())
	if err != nil {
		return anchor
	}
	return d
}

// DaysAfterCapped returns anchor shifted by a uniform number of days in
// [lo, hi], never past now. When the offset window lies entirely beyond now
// the draw degrades to [anchor, now), and to the anchor itself when even
// that is empty, so anchor <= date <= now holds for same-day anchors too.
func (e *Engine) DaysAfterCapped(anchor time.Time, lo, hi int) time.Time {
	upper := anchor.AddDate(0, 0, hi+1)
	if now := e.now(); upper.After(now) {
		upper = now
	}
	d, err := e.DateBetween(anchor.AddDate(0, 0, lo), upper)
	if err != nil {
		return e.DateAfter(anchor)
	}
	return d
}

// DaysAfter returns anchor shifted by a uniform number of days in [lo, hi].
func (e *Engine) DaysAfter(anchor time.Time, lo, hi int) time.Time {
	return anchor.AddDate(0, 0, e.IntBetween(lo, hi))
}
