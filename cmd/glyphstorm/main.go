// Command glyphstorm drives the full-screen terminal animation engine:
// it wires the renderer, event bus, AnimationEngine, command language,
// overlay arbiter, and persisted-state collaborator together, then runs
// the frame loop until the user quits or the process is signaled.
//
// Grounded on cmd/vi-fighter/main.go's overall shape (flag parsing,
// debug-gated file logging with rotation, screen init/defer-cleanup,
// a single event-plus-ticker select loop) adapted to this repo's
// cooperative single-goroutine AnimationEngine instead of an ECS world
// plus a separate ClockScheduler goroutine.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/lixenwraith/glyphstorm/buffer"
	"github.com/lixenwraith/glyphstorm/command"
	"github.com/lixenwraith/glyphstorm/config"
	"github.com/lixenwraith/glyphstorm/engine"
	"github.com/lixenwraith/glyphstorm/event"
	"github.com/lixenwraith/glyphstorm/metric"
	"github.com/lixenwraith/glyphstorm/overlay"
	"github.com/lixenwraith/glyphstorm/patterns"
	"github.com/lixenwraith/glyphstorm/renderer"
)

const version = "0.1.0"

const (
	logDir      = "logs"
	logFileName = "glyphstorm.log"
	maxLogSize  = 10 * 1024 * 1024
)

// qualityFPS maps the -q/--quality tiers to a target frame rate.
var qualityFPS = map[string]uint32{"low": 15, "medium": 30, "high": 60}
var qualityOrder = []string{"low", "medium", "high"}

// setupLogging mirrors cmd/vi-fighter/main.go's setupLogging: file-only
// logging gated behind --debug, with simple size-based rotation, never
// writing to stdout/stderr while the alternate screen is active.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to create log directory: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		ts := time.Now().Format("2006-01-02-15-04-05")
		rotated := filepath.Join(logDir, fmt.Sprintf("glyphstorm-%s.log", ts))
		if err := os.Rename(logPath, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to rotate log file: %v\n", err)
		}
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Printf("=== glyphstorm started ===")
	return f
}

func main() {
	var (
		flagPattern = flag.String("pattern", "", "initial pattern (case-insensitive)")
		flagQuality = flag.String("quality", "medium", "low|medium|high")
		flagFPS     = flag.Int("fps", 0, "explicit target FPS, 10-60 (overrides --quality)")
		flagTheme   = flag.String("theme", "", "initial theme (case-insensitive)")
		flagNoMouse = flag.Bool("no-mouse", false, "disable mouse capture")
		flagDebug   = flag.Bool("debug", false, "enable debug logging to file")
		flagVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.StringVar(flagPattern, "p", "", "shorthand for --pattern")
	flag.StringVar(flagQuality, "q", "medium", "shorthand for --quality")
	flag.IntVar(flagFPS, "f", 0, "shorthand for --fps")
	flag.StringVar(flagTheme, "t", "", "shorthand for --theme")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *flagVersion {
		fmt.Println("glyphstorm " + version)
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "glyphstorm: stdout is not a terminal")
		os.Exit(1)
	}

	logFile := setupLogging(*flagDebug)
	if logFile != nil {
		defer logFile.Close()
	}
	rand.Seed(time.Now().UnixNano())

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "glyphstorm: fatal: %v\n", r)
			os.Exit(1)
		}
	}()

	store, snap, err := openStore()
	if err != nil {
		log.Printf("config: %v (continuing without persisted state)", err)
	}

	// CLI flags win over the persisted snapshot, which wins over the
	// built-in default — a restarted process resumes where it left off
	// unless the user explicitly asks for something else this run.
	pattern := *flagPattern
	if pattern == "" {
		pattern = snap.Pattern
	}
	themeFlag := *flagTheme
	if themeFlag == "" {
		themeFlag = snap.Theme
	}

	fps := resolveFPS(*flagQuality, *flagFPS)
	if *flagFPS == 0 && *flagQuality == "medium" && snap.FPS != 0 {
		fps = uint32(snap.FPS)
	}

	bus := event.NewBus()
	reg := metric.NewRegistry()

	themeRegistry := patterns.NewThemeRegistry()
	themeIdx, _, ok := themeRegistry.IndexByName(themeFlag)
	if !ok {
		themeIdx = 1
	}
	theme, _ := themeRegistry.Theme(themeIdx)

	catalogue := &catalogueHolder{}
	catalogue.reg = patterns.NewRegistry(theme)

	rend := renderer.New()
	if err := rend.Init(!*flagNoMouse); err != nil {
		fmt.Fprintf(os.Stderr, "glyphstorm: failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer rend.Cleanup()

	eng := engine.New(rend, bus, reg)
	eng.SetFPS(fps)

	// st is populated below, once every other collaborator it references
	// exists; the onThemeChange callback only needs the pointer, not a
	// fully-populated struct, since it runs no earlier than the first
	// command-mode or quick `theme`/randomize action, well after main
	// finishes wiring.
	st := &uiState{}

	var exec *command.Executor
	exec = command.NewExecutor(eng, catalogue, themeRegistry, store, func(idx int, _ string) {
		rebuildPatterns(catalogue, themeRegistry, eng, idx)
		st.themeIdx = idx
	})

	entry, _, found := catalogue.ByName(pattern)
	if !found {
		entry, _ = catalogue.ByIndex(1)
	}
	eng.SetPattern(entry.Pattern)
	exec.UpdateState(themeIdx)

	cmdBuf := command.NewBuffer()
	selectMode := command.NewSelectMode()
	ms := &modeSource{cmdBuf: cmdBuf, selectMode: selectMode, eng: eng}
	arbiter := overlay.New(ms)

	debugOverlay := false
	bus.On(event.PatternChange, func(env event.Envelope) {
		if name, ok := env.Data.(string); ok {
			arbiter.ShowPatternName(name)
		}
	})

	eng.SetBeforeTerminalRenderCallback(func() {
		now := time.Now()
		if cmdBuf.Expired(now) {
			cmdBuf.Cancel()
		}
		if selectMode.Expired(now) {
			selectMode.Cancel()
		}
	})
	eng.SetAfterRenderCallback(func() {
		back := rend.GetBuffer()
		size := rend.GetSize()
		if debugOverlay {
			drawDebugOverlay(back, reg, eng)
		} else {
			back.ClearOverlayRow(0)
		}
		arbiter.Render(back, size)
	})

	stop := make(chan struct{})
	var stopOnce sync.Once
	shutdown := func() {
		stopOnce.Do(func() {
			eng.Stop()
			close(stop)
		})
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		shutdown()
	}()

	*st = uiState{
		eng:          eng,
		exec:         exec,
		catalogue:    catalogue,
		themes:       themeRegistry,
		cmdBuf:       cmdBuf,
		selectMode:   selectMode,
		arbiter:      arbiter,
		fps:          fps,
		qualityIdx:   qualityIndex(*flagQuality),
		themeIdx:     themeIdx,
		debugOverlay: &debugOverlay,
		shutdown:     shutdown,
	}

	go func() {
		for ev := range rend.Events() {
			evCopy := ev
			eng.Post(func() { st.handleInput(evCopy) })
		}
	}()

	eng.Start()
	eng.Run(stop)

	exec.Cleanup()
}

func resolveFPS(quality string, explicit int) uint32 {
	if explicit >= 10 && explicit <= 60 {
		return uint32(explicit)
	}
	if f, ok := qualityFPS[quality]; ok {
		return f
	}
	return qualityFPS["medium"]
}

func qualityIndex(quality string) int {
	for i, q := range qualityOrder {
		if q == quality {
			return i
		}
	}
	return 1
}

func openStore() (config.Collaborator, config.Snapshot, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, config.Snapshot{}, err
	}
	store := config.NewTOMLStore(path)
	snap, err := store.Load()
	if err != nil {
		return store, config.Snapshot{}, err
	}
	return store, snap, nil
}

// rebuildPatterns is the onThemeChange callback spec §4.10 names: it
// rebuilds every demo pattern against the new theme and reinstalls
// whichever one was active by name, preserving the user's current
// selection across a theme switch.
func rebuildPatterns(catalogue *catalogueHolder, themes *patterns.ThemeRegistry, eng *engine.Engine, themeIdx int) {
	theme, ok := themes.Theme(themeIdx)
	if !ok {
		return
	}
	currentName := eng.CurrentPatternName()
	catalogue.reg = patterns.NewRegistry(theme)
	if entry, _, found := catalogue.ByName(currentName); found {
		eng.SetPattern(entry.Pattern)
	}
}

// drawDebugOverlay writes via SetOverlay, not Set: this runs in the
// after-render callback, which fires after this tick's renderer.Render
// has already diffed and flushed. A plain back.Set write at that point
// would sit in the back grid until the next tick's back.Clear() wipes it,
// never once reaching a diff. The overlay layer is untouched by Clear,
// so it survives to be composited into the following tick's diff.
func drawDebugOverlay(back *buffer.Buffer, reg *metric.Registry, eng *engine.Engine) {
	fps := reg.Floats.Get("engine.actual_fps").Get()
	frames := reg.Ints.Get("engine.frame_count").Load()
	drops := reg.Ints.Get("engine.frame_drops").Load()
	text := fmt.Sprintf(" fps=%.1f frames=%d drops=%d pattern=%s ",
		fps, frames, drops, eng.CurrentPatternName())
	for x, r := range text {
		back.SetOverlay(x, 0, buffer.Cell{Char: r}.WithColor(buffer.Color{R: 180, G: 180, B: 180}))
	}
}

// modeSource adapts the command buffer, pattern-selector, and engine
// switch flag to overlay.ModeSource without overlay importing any of
// them.
type modeSource struct {
	cmdBuf     *command.Buffer
	selectMode *command.SelectMode
	eng        *engine.Engine
}

func (m *modeSource) CommandModeActive() bool       { return m.cmdBuf.Active() }
func (m *modeSource) CommandModeText() string       { return m.cmdBuf.Text() }
func (m *modeSource) PatternSelectModeActive() bool { return m.selectMode.Active() }
func (m *modeSource) PatternSelectModeText() string { return m.selectMode.Text() }
func (m *modeSource) SwitchInProgress() bool        { return m.eng.SwitchInProgress() }

// catalogueHolder lets the executor and main hold a stable command.Catalogue
// reference while the concrete *patterns.Registry underneath it is
// replaced wholesale on every theme switch (spec §4.10: theme changes
// rebuild patterns against the new palette).
type catalogueHolder struct {
	reg *patterns.Registry
}

func (h *catalogueHolder) Count() int { return h.reg.Count() }

func (h *catalogueHolder) ByIndex(i int) (command.PatternEntry, bool) {
	return h.reg.ByIndex(i)
}

func (h *catalogueHolder) ByName(s string) (command.PatternEntry, int, bool) {
	return h.reg.ByName(s)
}

func (h *catalogueHolder) Names() []string { return h.reg.Names() }

func (h *catalogueHolder) Random() (command.PatternEntry, int) {
	return h.reg.Random()
}
