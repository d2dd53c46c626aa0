package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/serieslab/inspector/internal/config"
	"github.com/serieslab/inspector/internal/plugin"
	"github.com/serieslab/inspector/internal/session"
	"github.com/serieslab/inspector/internal/views"
	"github.com/serieslab/inspector/pkg/timeutil"
)

// ────────────────────────────────────────────────────────────
// Pane focuses
// ────────────────────────────────────────────────────────────

// Pane represents which UI pane currently has keyboard focus.
type Pane int

const (
	PaneItems Pane = iota
	PaneMarkings
)

// labelKeys maps the label hotkeys onto the configured label set.
var labelKeys = map[string]string{
	"b": config.LabelBFill,
	"n": config.LabelFFill,
	"d": config.LabelDiscard,
	"z": config.LabelZero,
	"j": config.LabelGood,
	"c": config.LabelComment,
	"w": config.LabelLinearFill,
}

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the root BubbleTea model for the inspector TUI. It owns no
// domain state: everything flows through the session model and the
// views workspace; the TUI projects that state onto the terminal and
// translates input back into model operations.
type Model struct {
	cfg     config.Config
	log     zerolog.Logger
	sess    *session.Model
	ws      *views.Workspace
	plugins *plugin.Manager

	// UI state
	width        int
	height       int
	focus        Pane
	selectedItem int
	selectedMark int
	keys         keyMap
	help         help.Model

	// Mouse drag selection, nil when idle.
	drag *dragState

	// Debounced redraw: only the newest generation rebuilds the plot
	// frames. Dirty is set by the workspace redraw hook.
	redrawGen    int
	dirty        bool
	outlineFrame string
	detailFrame  string

	statusMsg string
}

type dragState struct {
	inDetail bool
	startCol int
}

// NewModel wires the TUI to an already-populated session.
func NewModel(cfg config.Config, log zerolog.Logger, sess *session.Model, ws *views.Workspace, plugins *plugin.Manager) *Model {
	h := help.New()
	h.Styles.ShortKey = hintKeyStyle
	h.Styles.ShortDesc = hintDescStyle
	h.Styles.ShortSeparator = hintDescStyle

	m := &Model{
		cfg:       cfg,
		log:       log.With().Str("component", "tui").Logger(),
		sess:      sess,
		ws:        ws,
		plugins:   plugins,
		keys:      defaultKeyMap(),
		help:      h,
		statusMsg: "ready",
	}
	ws.OnRedraw(func() { m.dirty = true })
	return m
}

// ────────────────────────────────────────────────────────────
// Messages
// ────────────────────────────────────────────────────────────

// redrawMsg carries the debounce generation it was scheduled for;
// stale generations are dropped.
type redrawMsg struct{ gen int }

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m *Model) Init() tea.Cmd {
	m.dirty = true
	return m.flushRedraw()
}

// flushRedraw schedules a debounced frame rebuild when anything
// changed during this update. Every call restarts the quiet period by
// bumping the generation.
func (m *Model) flushRedraw() tea.Cmd {
	if !m.dirty {
		return nil
	}
	m.dirty = false
	m.redrawGen++
	gen := m.redrawGen
	return tea.Tick(m.cfg.RedrawDelay, func(time.Time) tea.Msg {
		return redrawMsg{gen: gen}
	})
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dirty = true
		return m, m.flushRedraw()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case redrawMsg:
		if msg.gen != m.redrawGen {
			return m, nil
		}
		m.rebuildFrames()
		return m, nil
	}

	return m, nil
}

// handleKey routes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// ── Labels ──

	if label, ok := labelKeys[key]; ok {
		if err := m.sess.SetActiveLabel(label); err == nil {
			m.statusMsg = fmt.Sprintf("label: %s", label)
		}
		return m, m.flushRedraw()
	}

	switch key {

	// ── Global ──

	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.sess.ClearActiveLabel()
		m.statusMsg = "label cleared"

	case "tab":
		m.focus = (m.focus + 1) % 2

	// ── Interval ──

	case " ":
		m.ws.MoveInterval(1)
	case "-":
		m.ws.MoveInterval(-1)
	case "K":
		m.ws.MaximizeInterval()

	// ── Visibility ──

	case "i":
		m.sess.InvertVisible()
	case "h":
		m.sess.SetAllVisible(false)
		m.statusMsg = "all items hidden"
	case "v":
		if it := m.selectedItemRef(); it != nil {
			m.sess.SetItemVisible(it, !it.Visible)
		}

	// ── Markings ──

	case "ctrl+r":
		shown := m.ws.Shown()
		m.sess.DeleteMarkingsInRange(shown.Start, shown.End, true)
		m.statusMsg = "deleted markings inside interval"

	case "x":
		if it, mk := m.selectedMarkingRef(); mk != nil {
			m.sess.RemoveMarking(it, mk)
			m.selectedMark = maxInt(0, m.selectedMark-1)
		}

	case "a":
		if it, mk := m.selectedMarkingRef(); mk != nil {
			if err := m.sess.RelabelMarking(it, mk); err != nil {
				m.statusMsg = "relabel needs an active label"
			}
		}

	case "G":
		n := plugin.MarkGaps(m.sess, m.gapLimit(), config.LabelDiscard, true)
		m.statusMsg = fmt.Sprintf("marked %d gaps", n)

	case "t":
		if it := m.selectedItemRef(); it != nil {
			m.sess.TagBetweenOuterMarkings(it, config.TagCleaned)
			m.statusMsg = "tagged between outer markings"
		}

	// ── Persistence ──

	case "s", "S":
		changed, deleted := m.sess.SaveSnapshot(false)
		m.statusMsg = fmt.Sprintf("saved %d items, %d deletions", len(changed), len(deleted))

	case "l":
		m.sess.RequestLoad(false, false)
		m.statusMsg = "markings loaded"
	case "L":
		m.sess.RequestLoad(false, true)
		m.statusMsg = "markings reloaded"

	// ── Demo data ──

	case "R":
		if gen, ok := m.plugins.Get("randomgen").(*plugin.RandomGen); ok {
			if _, err := gen.AddDemoItem(); err != nil {
				m.statusMsg = fmt.Sprintf("demo item failed: %v", err)
			}
		}

	// ── Items / markings navigation ──

	case "D":
		if it := m.selectedItemRef(); it != nil {
			m.sess.RemoveItem(it)
			m.selectedItem = maxInt(0, m.selectedItem-1)
			m.selectedMark = 0
		}

	case "up":
		m.moveSelection(-1)
	case "down":
		m.moveSelection(1)
	}

	return m, m.flushRedraw()
}

func (m *Model) moveSelection(delta int) {
	if m.focus == PaneItems {
		m.selectedItem = clamp(m.selectedItem+delta, 0, maxInt(0, m.sess.Len()-1))
		m.selectedMark = 0
		return
	}
	if it := m.selectedItemRef(); it != nil {
		m.selectedMark = clamp(m.selectedMark+delta, 0, maxInt(0, len(it.Markings)-1))
	}
}

func (m *Model) selectedItemRef() *session.DataItem {
	items := m.sess.Items(false)
	if len(items) == 0 {
		return nil
	}
	return items[clamp(m.selectedItem, 0, len(items)-1)]
}

func (m *Model) selectedMarkingRef() (*session.DataItem, *session.Marking) {
	it := m.selectedItemRef()
	if it == nil || len(it.Markings) == 0 {
		return nil, nil
	}
	return it, it.Markings[clamp(m.selectedMark, 0, len(it.Markings)-1)]
}

// gapLimit converts the configured gap limit to domain units: a
// duration for time-indexed sessions, a plain delta in seconds
// otherwise.
func (m *Model) gapLimit() float64 {
	if m.sess.IsTimeIndexed() {
		return timeutil.DurationToDomain(m.cfg.DefaultGapLimit)
	}
	return m.cfg.DefaultGapLimit.Seconds()
}

// ────────────────────────────────────────────────────────────
// Mouse
// ────────────────────────────────────────────────────────────

// handleMouse implements drag selection: press anchors a column,
// release spans press→release through the pane's projection. The
// outline pane moves the shown interval; the detail pane creates
// markings with the active label.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	geo := m.geometry()
	col := msg.X - 1 // panel padding
	if col < 0 || col >= geo.plotCols {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch {
		case msg.Y >= geo.outlineTop && msg.Y < geo.outlineTop+geo.outlineH:
			m.drag = &dragState{inDetail: false, startCol: col}
		case msg.Y >= geo.detailTop && msg.Y < geo.detailTop+geo.detailH:
			m.drag = &dragState{inDetail: true, startCol: col}
		}

	case tea.MouseActionRelease:
		if m.drag == nil {
			return m, nil
		}
		drag := m.drag
		m.drag = nil

		if drag.inDetail {
			shown := m.ws.Shown()
			p := newProjection(shown.Start, shown.End, geo.plotCols)
			m.sess.NewMarkingAtSelection(p.domainOf(drag.startCol), p.domainOf(col), true)
		} else if ext, ok := m.ws.Outline().FullExtent(); ok {
			p := newProjection(ext.Start, ext.End, geo.plotCols)
			m.ws.SetShownInterval(views.Interval{
				Start: p.domainOf(drag.startCol),
				End:   p.domainOf(col),
			})
		}
	}

	return m, m.flushRedraw()
}

// ────────────────────────────────────────────────────────────
// Layout
// ────────────────────────────────────────────────────────────

// geometry describes the vertical pane split used both for rendering
// and for routing mouse coordinates.
type geometry struct {
	plotCols   int
	outlineTop int
	outlineH   int
	detailTop  int
	detailH    int
	bottomH    int
}

func (m *Model) geometry() geometry {
	body := maxInt(m.height-2, 6) // header + footer
	outlineH := maxInt(body*35/100, 3)
	detailH := maxInt(body*35/100, 3)
	return geometry{
		plotCols:   maxInt(m.width-2, 10),
		outlineTop: 1,
		outlineH:   outlineH,
		detailTop:  1 + outlineH,
		detailH:    detailH,
		bottomH:    maxInt(body-outlineH-detailH, 3),
	}
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	geo := m.geometry()
	header := renderHeader(m)
	footer := renderFooter(m)

	if m.outlineFrame == "" {
		m.rebuildFrames()
	}

	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		renderItemPanel(m, m.width*40/100, geo.bottomH),
		renderMarkingsPanel(m, m.width-m.width*40/100, geo.bottomH),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.outlineFrame,
		m.detailFrame,
		bottom,
		footer,
	)
}

// rebuildFrames re-renders the two plot panes. This is the expensive
// part of the view and only runs when a debounced redraw fires.
func (m *Model) rebuildFrames() {
	geo := m.geometry()
	m.outlineFrame = renderOutlinePanel(m, m.width, geo.outlineH)
	m.detailFrame = renderDetailPanel(m, m.width, geo.detailH)
}
