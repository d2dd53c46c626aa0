package views

import (
	"github.com/rs/zerolog"

	"github.com/serieslab/inspector/internal/config"
	"github.com/serieslab/inspector/internal/session"
)

// Workspace binds the outline and detail roles to one session model.
// It subscribes to the model's hooks and keeps both views consistent:
// lines and spans track items and markings, the detail interval
// follows the outline selector, and every visual change requests a
// redraw. Redraw requests are coalesced by the caller (the TUI
// debounces them); the workspace only signals that something changed.
type Workspace struct {
	cfg   config.Config
	log   zerolog.Logger
	model *session.Model

	outline *Outline
	detail  *Detail

	redraw func()
}

// NewWorkspace wires a workspace to the model's hooks.
func NewWorkspace(cfg config.Config, log zerolog.Logger, model *session.Model) *Workspace {
	w := &Workspace{
		cfg:     cfg,
		log:     log.With().Str("component", "views").Logger(),
		model:   model,
		outline: newOutline(cfg.DecimateThreshold, cfg.DecimatePoints),
		detail:  newDetail(cfg.MinimumYRange),
		redraw:  func() {},
	}

	model.OnItemAdded(w.itemAdded)
	model.OnItemRemoved(w.itemRemoved)
	model.OnVisibilitySet(w.visibilitySet)
	model.OnMarkingAdded(w.markingAdded)
	model.OnMarkingRemoved(w.markingRemoved)
	model.OnMarkingRelabeled(func(*session.DataItem, *session.Marking) { w.requestRedraw() })
	return w
}

// OnRedraw registers the redraw signal. The TUI installs a debounced
// scheduler here.
func (w *Workspace) OnRedraw(fn func()) { w.redraw = fn }

// Outline returns the overview role.
func (w *Workspace) Outline() *Outline { return w.outline }

// Detail returns the zoom role.
func (w *Workspace) Detail() *Detail { return w.detail }

func (w *Workspace) requestRedraw() { w.redraw() }

// ───────────────────────────── model hooks ───────────────────────────

func (w *Workspace) itemAdded(it *session.DataItem) {
	first := len(w.outline.order) == 0

	w.outline.addLine(it)
	w.detail.addLine(it)

	if first {
		w.setShown(w.initialInterval(it))
	} else {
		w.detail.recomputeY()
	}
	w.requestRedraw()
}

// itemRemoved tears down in strict order: spans first, then lines.
// Dropping the line first would orphan spans that still reference the
// item.
func (w *Workspace) itemRemoved(it *session.DataItem) {
	w.outline.spans.removeItem(it)
	w.detail.spans.removeItem(it)
	w.outline.removeLine(it)
	w.detail.removeLine(it)
	w.detail.recomputeY()
	w.requestRedraw()
}

func (w *Workspace) visibilitySet(*session.DataItem) {
	w.detail.recomputeY()
	w.requestRedraw()
}

func (w *Workspace) markingAdded(it *session.DataItem, mk *session.Marking) {
	w.outline.spans.add(it, mk)
	w.detail.spans.add(it, mk)
	w.requestRedraw()
}

func (w *Workspace) markingRemoved(_ *session.DataItem, mk *session.Marking) {
	w.outline.spans.remove(mk)
	w.detail.spans.remove(mk)
	w.requestRedraw()
}

// ──────────────────────────── shown interval ─────────────────────────

// initialInterval selects the opening detail window from the first
// item: the lesser of maxPreshownPoints and a fractionPreshown share
// of the series, measured from its start.
func (w *Workspace) initialInterval(it *session.DataItem) Interval {
	n := it.Series.Len() / w.cfg.FractionPreshown
	if n > w.cfg.MaxPreshownPoints {
		n = w.cfg.MaxPreshownPoints
	}
	if n < 2 {
		n = it.Series.Len()
	}
	return Interval{Start: it.Series.Index(0), End: it.Series.Index(n - 1)}
}

// SetShownInterval moves the outline selector and narrows the detail
// view to iv, clamped to the full extent. A zero-width interval is
// ignored.
func (w *Workspace) SetShownInterval(iv Interval) {
	iv = iv.Normalized()
	if iv.IsZero() {
		w.log.Debug().Float64("at", iv.Start).Msg("ignoring zero-width interval")
		return
	}
	if ext, ok := w.outline.FullExtent(); ok {
		iv = iv.ClampTo(ext)
	}
	w.setShown(iv)
	w.requestRedraw()
}

func (w *Workspace) setShown(iv Interval) {
	w.outline.selector = iv
	w.detail.setShown(iv)
}

// MoveInterval shifts the shown interval by its own width, forward
// for positive direction and backward for negative, clamped to the
// full extent.
func (w *Workspace) MoveInterval(direction int) {
	iv := w.outline.selector
	if iv.IsZero() {
		return
	}
	delta := iv.Width()
	if direction < 0 {
		delta = -delta
	}
	w.SetShownInterval(iv.Shifted(delta))
}

// MaximizeInterval widens the shown interval to the full extent.
func (w *Workspace) MaximizeInterval() {
	if ext, ok := w.outline.FullExtent(); ok {
		w.SetShownInterval(ext)
	}
}

// Shown returns the current shown interval.
func (w *Workspace) Shown() Interval { return w.outline.selector }
