// stream keeps the set of materialized tiles in step with the camera.
//
// Each tile is either unmaterialized or materialized.  A tile is
// materialized exactly while it is inside the window around the camera
// tile; the tile's Ref is the only record of that, so a tile can never be
// spawned twice.  Tiles carrying an enemy spawn it the first time they
// materialize and never again.
//
// A Streamer is owned by the frame thread and is not safe for concurrent
// use.

package stream

import (
	"errors"
	"fmt"
	systemLog "log"
	"os"

	"github.com/bradbev/tileworld/src/arena"
	"github.com/bradbev/tileworld/src/tilemap"
	"github.com/bradbev/tileworld/src/worldgen"
	"golang.org/x/exp/slices"
)

var log = systemLog.New(os.Stderr, "Stream ", systemLog.Ltime)

var (
	ErrNotReady       = errors.New("streamer has not been started")
	ErrAlreadyStarted = errors.New("streamer already started")
	ErrUnknownEnemy   = errors.New("unknown enemy handle")
)

// Bridge realises and destroys the presentation entities for tiles and
// enemies.  Handles it returns are opaque to the streamer.
type Bridge interface {
	// AssetsLoaded gates spawning during early frames.
	AssetsLoaded() bool
	SpawnTile(biome tilemap.Biome, x, y float64, variant int) (arena.Handle, error)
	SpawnEnemy(x, y float64) (arena.Handle, error)
	Despawn(h arena.Handle)
}

type Generator interface {
	Generate(grid *tilemap.Grid) (worldgen.Report, error)
}

type Config struct {
	// Half extents of the window, in tiles.
	RenderWidth  int
	RenderHeight int

	// Variants is the number of sprite variants per biome.
	Variants    int
	VariantSeed uint32

	// FullScan reconciles every tile of the grid each tick instead of
	// diffing windows.
	FullScan bool

	// Strict panics on logic errors such as despawning an unmaterialized
	// tile.  Otherwise they are logged and ignored.
	Strict bool
}

func DefaultConfig() Config {
	return Config{
		RenderWidth:  13,
		RenderHeight: 10,
		Variants:     4,
	}
}

type State uint8

const (
	Uninitialized State = iota
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Ready:
		return "Ready"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Tick reports what one Update did.
type Tick struct {
	Center         tilemap.Coord
	Window         tilemap.Rect
	Spawned        int
	Despawned      int
	EnemiesSpawned int
	// Deferred counts tiles left for the next tick because the bridge
	// could not spawn them.
	Deferred int
}

// Intents is the number of bridge calls the tick made.
func (t Tick) Intents() int {
	return t.Spawned + t.Despawned + t.EnemiesSpawned
}

type Streamer struct {
	grid   *tilemap.Grid
	mapper tilemap.Mapper
	bridge Bridge
	cfg    Config

	state     State
	window    tilemap.Rect
	hasWindow bool

	// pending holds grid indices inside the window whose tile or enemy
	// spawn failed and is retried next tick.
	pending map[int]struct{}

	// enemies maps live enemy handles back to their tile.
	enemies map[arena.Handle]int
}

func New(grid *tilemap.Grid, mapper tilemap.Mapper, bridge Bridge, cfg Config) *Streamer {
	if cfg.Variants <= 0 {
		cfg.Variants = 1
	}
	return &Streamer{
		grid:    grid,
		mapper:  mapper,
		bridge:  bridge,
		cfg:     cfg,
		pending: map[int]struct{}{},
		enemies: map[arena.Handle]int{},
	}
}

// Start runs world generation and moves the streamer to Ready.  It can only
// succeed once.
func (s *Streamer) Start(gen Generator) (worldgen.Report, error) {
	if s.state != Uninitialized {
		return worldgen.Report{}, ErrAlreadyStarted
	}
	report, err := gen.Generate(s.grid)
	if err != nil {
		return report, fmt.Errorf("generate world: %w", err)
	}
	s.state = Ready
	return report, nil
}

func (s *Streamer) State() State           { return s.state }
func (s *Streamer) Grid() *tilemap.Grid    { return s.grid }
func (s *Streamer) Mapper() tilemap.Mapper { return s.mapper }
func (s *Streamer) Config() Config         { return s.cfg }

// Window is the window materialized by the last Update, clipped to the grid.
func (s *Streamer) Window() tilemap.Rect {
	return s.window
}

// SetExtents changes the window half extents; the next Update streams the
// difference.
func (s *Streamer) SetExtents(renderWidth, renderHeight int) {
	if renderWidth < 0 {
		renderWidth = 0
	}
	if renderHeight < 0 {
		renderHeight = 0
	}
	s.cfg.RenderWidth = renderWidth
	s.cfg.RenderHeight = renderHeight
}

// Pending is the number of tiles waiting on a retry.
func (s *Streamer) Pending() int {
	return len(s.pending)
}

// LiveEnemies is the number of spawned enemies that have not been defeated.
func (s *Streamer) LiveEnemies() int {
	return len(s.enemies)
}

// Update streams the window around the camera position (cx, cy).
func (s *Streamer) Update(cx, cy float64) (Tick, error) {
	if s.state != Ready {
		return Tick{}, ErrNotReady
	}
	center := s.mapper.WorldToTile(cx, cy)
	want := tilemap.WindowAround(center, s.cfg.RenderWidth, s.cfg.RenderHeight).Intersect(s.grid.Bounds())
	t := Tick{Center: center, Window: want}
	loaded := s.bridge.AssetsLoaded()

	if s.cfg.FullScan {
		s.reconcileFull(want, loaded, &t)
	} else {
		s.reconcileWindow(want, loaded, &t)
	}
	s.window = want
	s.hasWindow = true
	if t.Deferred > 0 {
		log.Printf("deferred %d tiles around %v (assets loaded: %v)", t.Deferred, center, loaded)
	}
	return t, nil
}

// reconcileWindow only touches tiles in the symmetric difference of the old
// and new windows, plus tiles queued for retry.
func (s *Streamer) reconcileWindow(want tilemap.Rect, loaded bool, t *Tick) {
	var entering []tilemap.Rect
	if s.hasWindow {
		for _, r := range s.window.Subtract(want) {
			r.Each(func(c tilemap.Coord) {
				i, _ := s.grid.Index(c)
				if _, queued := s.pending[i]; queued {
					delete(s.pending, i)
					if !s.grid.At(i).Materialized() {
						return
					}
				}
				s.despawnTile(i, t)
			})
		}
		entering = want.Subtract(s.window)
	} else if !want.Empty() {
		entering = []tilemap.Rect{want}
	}

	retry := make([]int, 0, len(s.pending))
	for i := range s.pending {
		retry = append(retry, i)
	}
	slices.Sort(retry)
	for _, i := range retry {
		delete(s.pending, i)
		if want.Contains(s.grid.CoordOf(i)) {
			s.materialize(i, loaded, t)
		}
	}

	for _, r := range entering {
		r.Each(func(c tilemap.Coord) {
			i, _ := s.grid.Index(c)
			s.materialize(i, loaded, t)
		})
	}
}

// reconcileFull checks every tile of the grid against the window.
func (s *Streamer) reconcileFull(want tilemap.Rect, loaded bool, t *Tick) {
	for k := range s.pending {
		delete(s.pending, k)
	}
	for i := 0; i < s.grid.Len(); i++ {
		tile := s.grid.At(i)
		inWindow := want.Contains(tile.Coord())
		switch {
		case tile.Materialized() && !inWindow:
			s.despawnTile(i, t)
		case inWindow && (!tile.Materialized() || enemyOwed(tile)):
			s.materialize(i, loaded, t)
		}
	}
}

func enemyOwed(tile *tilemap.Tile) bool {
	return tile.ContainsEnemy && !tile.EnemySpawned
}

func (s *Streamer) postpone(i int, t *Tick) {
	s.pending[i] = struct{}{}
	t.Deferred++
}

func (s *Streamer) materialize(i int, loaded bool, t *Tick) {
	tile := s.grid.At(i)
	if !tile.Materialized() || enemyOwed(tile) {
		if !loaded {
			s.postpone(i, t)
			return
		}
	}
	x, y := s.mapper.TileToWorld(tile.Coord())

	if !tile.Materialized() {
		variant := tilemap.Variant(s.cfg.VariantSeed, tile.Coord(), s.cfg.Variants)
		h, err := s.bridge.SpawnTile(tile.Biome, x, y, variant)
		if err != nil || !h.Valid() {
			if err != nil {
				log.Printf("spawn tile %v: %v", tile.Coord(), err)
			}
			s.postpone(i, t)
			return
		}
		tile.Ref = h
		t.Spawned++
	}

	if enemyOwed(tile) {
		h, err := s.bridge.SpawnEnemy(x, y)
		if err != nil || !h.Valid() {
			if err != nil {
				log.Printf("spawn enemy on %v: %v", tile.Coord(), err)
			}
			s.postpone(i, t)
			return
		}
		tile.EnemySpawned = true
		tile.Enemy = h
		s.enemies[h] = i
		t.EnemiesSpawned++
	}
}

func (s *Streamer) despawnTile(i int, t *Tick) {
	tile := s.grid.At(i)
	if !tile.Materialized() {
		s.logicError("despawn of unmaterialized tile %v", tile.Coord())
		return
	}
	s.bridge.Despawn(tile.Ref)
	tile.Ref = arena.Handle{}
	t.Despawned++
}

func (s *Streamer) logicError(format string, args ...any) {
	if s.cfg.Strict {
		log.Panicf(format, args...)
	}
	log.Printf("logic error: "+format, args...)
}

// DefeatEnemy destroys a live enemy and clears its tile's occupant.  The
// tile will not spawn another enemy.
func (s *Streamer) DefeatEnemy(h arena.Handle) error {
	i, ok := s.enemies[h]
	if !ok {
		return fmt.Errorf("defeat %v: %w", h, ErrUnknownEnemy)
	}
	delete(s.enemies, h)
	s.bridge.Despawn(h)
	s.grid.At(i).Enemy = arena.Handle{}
	return nil
}

// EnemyTile returns the tile an enemy was spawned from.
func (s *Streamer) EnemyTile(h arena.Handle) (tilemap.Coord, bool) {
	i, ok := s.enemies[h]
	if !ok {
		return tilemap.Coord{}, false
	}
	return s.grid.CoordOf(i), true
}
