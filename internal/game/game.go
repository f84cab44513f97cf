package game

import (
	"context"
	"errors"
	"strconv"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/shardcrawler/internal/gamedata"
	"github.com/samdwyer/shardcrawler/internal/logger"
	"github.com/samdwyer/shardcrawler/internal/storage"
	"github.com/samdwyer/shardcrawler/internal/telemetry"
	"github.com/samdwyer/shardcrawler/internal/ui"
	"github.com/samdwyer/shardcrawler/internal/world"
)

// RealtimeStep is the hazard tick interval in real-time mode.
const RealtimeStep = 100 * time.Millisecond

// Game is the interactive terminal driver. It owns the World and feeds it
// input and clock ticks from a single loop.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	bindings Bindings
	store    storage.Store
	world    *World
	best     *Stats
	state    Screen
	running  bool
	log      *logrus.Entry
}

// bellSound rings the terminal bell for damage and portal cues.
type bellSound struct {
	screen *ui.Screen
}

func (b bellSound) Play(tone Tone) {
	if tone == ToneDamage || tone == TonePortal {
		_ = b.screen.Beep()
	}
}

// New creates a new game instance. store may be nil to disable persistence.
func New(cfg Config, store storage.Store) (*Game, error) {
	palette, err := gamedata.LoadPalette(cfg.Palette)
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen, palette),
		bindings: DefaultBindings(),
		store:    store,
		state:    ScreenTitle,
		running:  true,
		log:      logger.For("game"),
	}
	g.loadBest()
	return g, nil
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go g.pollEvents(events, done)

	ticker := time.NewTicker(RealtimeStep)
	defer ticker.Stop()
	lastFrame := time.Now()

	for g.running {
		g.renderer.Render(BuildFrame(g.state, g.world, g.best, g.cfg))

		select {
		case <-ctx.Done():
			g.running = false
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ctx, ev, ticker)
		case <-ticker.C:
			if g.live() && g.world.Run.Mode == ModeRealtime {
				g.tick(ctx)
			}
		}

		now := time.Now()
		if g.live() {
			g.world.AddElapsed(now.Sub(lastFrame))
		}
		lastFrame = now
	}

	g.screen.Close()
	return ctx.Err()
}

// pollEvents forwards terminal events until the screen closes or the loop
// exits.
func (g *Game) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (g *Game) live() bool {
	return g.state == ScreenRun && g.world != nil
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event, ticker *time.Ticker) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev, ticker)
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey, ticker *time.Ticker) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'm':
			g.toggleMode(ticker)
			return
		case 'c':
			g.cyclePalette()
			return
		}
	}

	action := g.bindings.Resolve(ev)
	switch g.state {
	case ScreenTitle:
		if action == ActionInteract {
			g.startRun(ctx)
		}
	case ScreenRun, ScreenPause:
		switch action {
		case ActionPause:
			g.togglePause()
		case ActionRestart:
			g.startRun(ctx)
		case ActionNone:
		default:
			if g.state == ScreenRun {
				g.step(ctx, action)
			}
		}
	case ScreenSummary:
		switch action {
		case ActionRestart:
			g.startRun(ctx)
		case ActionInteract:
			g.state = ScreenTitle
		}
	}
}

// startRun generates a fresh run from the configured seed, or a random one.
func (g *Game) startRun(ctx context.Context) {
	seed := g.cfg.Seed
	if seed == "" {
		seed = randomSeed()
	}

	gen, err := world.GenerateRun(ctx, seed, g.cfg.Difficulty)
	if err != nil {
		g.log.WithError(err).Error("run generation failed")
		return
	}

	g.world = NewWorld(gen, g.cfg.Mode)
	g.world.ScreenShake = g.cfg.ScreenShake
	if g.cfg.Audio {
		g.world.Sound = bellSound{screen: g.screen}
	}
	g.world.play(ToneStart)
	g.state = ScreenRun

	g.log.WithFields(logrus.Fields{
		"seed":         gen.SeedString,
		"numeric_seed": gen.Seed,
		"difficulty":   gen.Difficulty,
		"mode":         g.cfg.Mode,
	}).Info("run started")
}

func (g *Game) step(ctx context.Context, action Action) {
	_, span := telemetry.Tracer("game").Start(ctx, "game.step")
	out := g.world.Step(action)
	span.SetAttributes(
		attribute.String("action", action.String()),
		attribute.Bool("took_turn", out.TookTurn),
		attribute.Bool("entered_portal", out.EnteredPortal),
		attribute.Int("run.depth", g.world.Run.Depth),
		attribute.Int("run.room", g.world.Run.RoomIndex),
		attribute.Int("player.hp", g.world.Run.Player.HP),
	)
	span.End()

	if g.world.Phase.Over() {
		g.endRun(ctx)
	}
}

func (g *Game) tick(ctx context.Context) {
	g.world.Tick()
	if g.world.Phase.Over() {
		g.endRun(ctx)
	}
}

func (g *Game) togglePause() {
	if g.state == ScreenRun {
		g.state = ScreenPause
	} else {
		g.state = ScreenRun
	}
}

// toggleMode flips between turn and real-time scheduling and persists the
// choice. The ticker restarts so a partial interval is not carried over.
func (g *Game) toggleMode(ticker *time.Ticker) {
	if g.cfg.Mode == ModeTurn {
		g.cfg.Mode = ModeRealtime
	} else {
		g.cfg.Mode = ModeTurn
	}
	ticker.Reset(RealtimeStep)
	if g.world != nil {
		g.world.SetMode(g.cfg.Mode)
	}
	g.saveSettings()
}

// cyclePalette switches to the next palette and persists the choice.
func (g *Game) cyclePalette() {
	id := nextPalette(g.cfg.Palette, gamedata.PaletteIDs())
	palette, err := gamedata.LoadPalette(id)
	if err != nil {
		g.log.WithError(err).Warn("failed to load palette")
		return
	}
	g.cfg.Palette = id
	g.renderer.SetPalette(palette)
	g.saveSettings()
}

// nextPalette returns the id after current in ids, wrapping around. Unknown
// ids restart at the first palette.
func nextPalette(current string, ids []string) string {
	if len(ids) == 0 {
		return current
	}
	for i, id := range ids {
		if id == current {
			return ids[(i+1)%len(ids)]
		}
	}
	return ids[0]
}

// endRun records the finished run and shows the summary.
func (g *Game) endRun(ctx context.Context) {
	stats := g.world.Run.Stats

	_, span := telemetry.Tracer("game").Start(ctx, "run.end")
	span.SetAttributes(
		attribute.String("run.seed", stats.SeedString),
		attribute.Bool("run.victory", stats.Victory),
		attribute.Int("run.depth_reached", stats.DepthReached),
		attribute.Int("run.shards", stats.ShardsCollected),
		attribute.Int("run.turns", stats.TurnsTaken),
		attribute.Int64("run.elapsed_ms", stats.Elapsed.Milliseconds()),
	)
	span.End()

	g.log.WithFields(logrus.Fields{
		"victory":       stats.Victory,
		"depth_reached": stats.DepthReached,
		"shards":        stats.ShardsCollected,
		"turns":         stats.TurnsTaken,
	}).Info("run ended")

	if g.best == nil || IsBetterRun(stats, *g.best) {
		g.best = &stats
		if g.store != nil {
			if err := g.store.SaveBestRun(stats.Record()); err != nil {
				g.log.WithError(err).Warn("failed to save best run")
			}
		}
	}
	g.state = ScreenSummary
}

func (g *Game) loadBest() {
	if g.store == nil {
		return
	}
	record, err := g.store.LoadBestRun()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			g.log.WithError(err).Warn("failed to load best run")
		}
		return
	}
	best := StatsFromRecord(record)
	g.best = &best
}

func (g *Game) saveSettings() {
	if g.store == nil {
		return
	}
	if err := g.store.SaveSettings(g.cfg.Settings()); err != nil {
		g.log.WithError(err).Warn("failed to save settings")
	}
}

// randomSeed picks a seed for runs with none configured.
func randomSeed() string {
	s := strconv.FormatInt(time.Now().UnixNano(), 36)
	if len(s) > 8 {
		s = s[len(s)-8:]
	}
	return s
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
