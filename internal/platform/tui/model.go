package tui

import (
	_ "embed"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/typemaster/internal/config"
	"github.com/vovakirdan/typemaster/internal/core"
	"github.com/vovakirdan/typemaster/internal/games/typemaster"
	"github.com/vovakirdan/typemaster/internal/storage"
)

//go:embed assets/LICENSE
var licenseText string

// maxPendingKeys bounds the typed-ahead buffer.
const maxPendingKeys = 64

// SessionRecorder stores finished sessions.
type SessionRecorder interface {
	SaveSession(rec storage.SessionRecord) (string, error)
}

// ShellDeps are the collaborators a SessionShell persists through.
// Any of them may be nil.
type ShellDeps struct {
	Highscores storage.HighscoreStore
	Sessions   SessionRecorder
	Player     string
	Logger     *log.Logger
}

// SessionShell is the Bubble Tea model that outlives individual play
// sessions. It owns the highscore and the difficulty selection and creates
// a fresh engine for every session.
type SessionShell struct {
	cfg       config.Config
	rt        core.RuntimeConfig
	words     []string
	deps      ShellDeps
	logger    *log.Logger
	keyMapper *KeyMapper
	keys      KeyMap
	help      help.Model
	license   viewport.Model
	screen    *core.Screen

	page       Page
	difficulty config.Difficulty
	highscore  storage.Highscore
	errMsg     string

	engine   *typemaster.Engine
	snap     typemaster.Snapshot
	floorRow int
	input    core.InputFrame
	pending  []rune
	started  time.Time
	lastTick time.Time
	sessions int

	quitting bool
}

// NewSessionShell creates the shell on the welcome page and loads the
// highscore from the persistence port.
func NewSessionShell(cfg config.Config, rt core.RuntimeConfig, words []string, deps ShellDeps) SessionShell {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if deps.Player == "" {
		deps.Player = "local"
	}
	if rt.TickRate <= 0 {
		rt.TickRate = cfg.TickRate
	}

	keys := DefaultKeyMap()
	h := help.New()
	h.Styles = plainHelpStyles()

	var best storage.Highscore
	if deps.Highscores != nil {
		best = deps.Highscores.LoadHighscore()
	}

	m := SessionShell{
		cfg:        cfg,
		rt:         rt,
		words:      words,
		deps:       deps,
		logger:     logger,
		keyMapper:  NewKeyMapper(keys),
		keys:       keys,
		help:       h,
		screen:     core.NewScreen(rt.ScreenW, rt.ScreenH),
		page:       PageWelcome,
		difficulty: cfg.Difficulty,
		highscore:  best,
		input:      core.NewInputFrame(),
	}
	m.license = m.newLicenseViewport()
	return m
}

// plainHelpStyles strips color from the help footer so it can be drawn
// into the cell buffer.
func plainHelpStyles() help.Styles {
	plain := lipgloss.NewStyle()
	return help.Styles{
		ShortKey:       plain,
		ShortDesc:      plain,
		ShortSeparator: plain,
		Ellipsis:       plain,
		FullKey:        plain,
		FullDesc:       plain,
		FullSeparator:  plain,
	}
}

func (m SessionShell) newLicenseViewport() viewport.Model {
	vp := viewport.New(max(m.rt.ScreenW-4, 1), max(m.rt.ScreenH-7, 1))
	vp.SetContent(licenseText)
	return vp
}

// Init starts the frame loop.
func (m SessionShell) Init() tea.Cmd {
	return tickCmd(m.rt)
}

// Update handles messages and updates the model state.
func (m SessionShell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		m = m.handleTick(time.Time(msg))
		return m, tickCmd(m.rt)
	}

	return m, nil
}

// handleKey classifies a key press for the current page.
func (m SessionShell) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, exit := m.keyMapper.MapKey(m.page, msg)
	if exit {
		if m.page == PageGame {
			m = m.finishSession(m.engine.Quit())
		}
		m.quitting = true
		return m, tea.Quit
	}

	switch m.page {
	case PageWelcome:
		switch action {
		case core.ActionConfirm:
			m = m.startSession(time.Now())
		case core.ActionCycleDifficulty:
			m.difficulty = m.difficulty.Next()
		case core.ActionLicense:
			m.page = PageLicense
			m.license.GotoTop()
		case core.ActionQuit:
			m.quitting = true
			return m, tea.Quit
		}

	case PageLicense:
		if action == core.ActionBack {
			m.page = PageWelcome
			return m, nil
		}
		var cmd tea.Cmd
		m.license, cmd = m.license.Update(msg)
		return m, cmd

	case PageGame:
		if action == core.ActionQuit {
			m.input.Set(core.ActionQuit)
			return m, nil
		}
		if r, ok := TypedRune(msg); ok && len(m.pending) < maxPendingKeys {
			m.pending = append(m.pending, r)
		}
	}

	return m, nil
}

// handleResize tracks the terminal size. A running session keeps the
// geometry it started with.
func (m SessionShell) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.rt.ScreenW = msg.Width
	m.rt.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.license.Width = max(msg.Width-4, 1)
	m.license.Height = max(msg.Height-7, 1)
	return m, nil
}

// startSession creates a fresh engine for the selected difficulty.
func (m SessionShell) startSession(now time.Time) SessionShell {
	cfg := m.cfg
	cfg.Difficulty = m.difficulty

	rt := m.rt
	if rt.Seed == 0 {
		rt.Seed = now.UnixNano()
	} else {
		rt.Seed += int64(m.sessions)
	}

	engine, err := typemaster.New(typemaster.OptionsFrom(cfg, rt, m.words))
	if err != nil {
		m.errMsg = err.Error()
		m.logger.Warn("cannot start session", "error", err, "width", rt.ScreenW, "height", rt.ScreenH)
		return m
	}

	m.engine = engine
	m.snap = engine.Snapshot()
	m.floorRow = cfg.FloorRow(rt.ScreenH)
	m.page = PageGame
	m.errMsg = ""
	m.pending = m.pending[:0]
	m.input.Clear()
	m.started = now
	m.lastTick = now
	m.sessions++

	m.logger.Info("session started", "player", m.deps.Player, "difficulty", m.difficulty, "seed", rt.Seed)
	return m
}

// handleTick feeds at most one buffered keystroke to the engine.
func (m SessionShell) handleTick(now time.Time) SessionShell {
	if m.page != PageGame || m.engine == nil {
		return m
	}

	if len(m.pending) > 0 {
		m.input.Type(m.pending[0])
		m.pending = m.pending[1:]
	}

	dt := now.Sub(m.lastTick)
	m.lastTick = now

	m.snap = m.engine.Tick(m.input, dt)
	m.input.Clear()

	if !m.snap.Running() {
		m = m.finishSession(m.snap)
	}
	return m
}

// finishSession merges and saves the highscore, records the session and
// returns to the welcome page.
func (m SessionShell) finishSession(snap typemaster.Snapshot) SessionShell {
	m.highscore = m.highscore.Merge(sessionHighscore(snap))
	duration := m.lastTick.Sub(m.started)

	if m.deps.Highscores != nil {
		if err := m.deps.Highscores.SaveHighscore(m.highscore); err != nil {
			m.logger.Warn("could not save highscore", "error", err)
		}
	}
	if m.deps.Sessions != nil {
		_, err := m.deps.Sessions.SaveSession(storage.SessionRecord{
			Player:     m.deps.Player,
			Difficulty: snap.Difficulty.Key(),
			TypedChars: snap.TypedChars,
			CPM:        snap.CPM,
			WPM:        snap.WPM,
			EndReason:  snap.Reason.String(),
			Duration:   duration,
		})
		if err != nil {
			m.logger.Warn("could not record session", "error", err)
		}
	}

	m.logger.Info("session ended",
		"player", m.deps.Player,
		"reason", snap.Reason,
		"typed", snap.TypedChars,
		"cpm", snap.CPM,
		"duration", duration.Round(time.Second),
	)

	m.engine = nil
	m.pending = m.pending[:0]
	m.input.Clear()
	m.page = PageWelcome
	return m
}

// sessionHighscore converts a snapshot to the persisted pair.
func sessionHighscore(snap typemaster.Snapshot) storage.Highscore {
	return storage.Highscore{
		TypedChars: uint32(max(snap.TypedChars, 0)),
		CPM:        uint32(max(snap.CPM, 0)),
	}
}

// View renders the current page.
func (m SessionShell) View() string {
	if m.quitting {
		return ""
	}

	switch m.page {
	case PageLicense:
		drawLicense(m.screen, m.license.View(), m.help.ShortHelpView(m.keys.LicenseHelp()))
	case PageGame:
		// The live highscore includes the running session
		best := m.highscore.Merge(sessionHighscore(m.snap))
		drawGame(m.screen, m.snap, best, m.floorRow)
	default:
		drawWelcome(m.screen, welcomeView{
			Difficulty: m.difficulty,
			Highscore:  m.highscore,
			Help:       m.help.View(m.keys),
			Err:        m.errMsg,
		})
	}

	return RenderScreen(m.screen)
}

// Page returns the page being shown.
func (m SessionShell) Page() Page {
	return m.page
}

// Highscore returns the best scores known to the shell.
func (m SessionShell) Highscore() storage.Highscore {
	return m.highscore
}

// Difficulty returns the selected level.
func (m SessionShell) Difficulty() config.Difficulty {
	return m.difficulty
}

// Snapshot returns the last engine snapshot.
func (m SessionShell) Snapshot() typemaster.Snapshot {
	return m.snap
}

// Run starts the Bubble Tea program with a session shell.
func Run(cfg config.Config, rt core.RuntimeConfig, words []string, deps ShellDeps) error {
	p := tea.NewProgram(
		NewSessionShell(cfg, rt, words, deps),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
