// tileworld assembles the streamed world into an ebiten game: the camera
// moves with the keyboard, the streamer keeps the tiles around it
// materialized and mouse clicks strike enemies.

package tileworld

import (
	"fmt"
	"image/color"
	systemLog "log"
	"os"

	"github.com/bradbev/tileworld/src/flat"
	"github.com/bradbev/tileworld/src/stream"
	"github.com/bradbev/tileworld/src/tilemap"
	"github.com/bradbev/tileworld/src/worldgen"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var log = systemLog.New(os.Stderr, "Tileworld ", systemLog.Ltime)

const tickSeconds = 1.0 / 60

type Game struct {
	cfg      *Config
	world    *flat.World
	camera   *flat.Camera
	bridge   *flat.Bridge
	streamer *stream.Streamer
	report   worldgen.Report

	last    stream.Tick
	strikes int
	kills   int

	// ShowHUD draws the debug text overlay.
	ShowHUD bool
	// ShowMarkers circles every live enemy.
	ShowMarkers bool
	// IgnoreMouse stops clicks from striking, set while an overlay owns
	// the mouse.
	IgnoreMouse bool
}

// NewGame generates the world and streams the first window around the
// origin.
func NewGame(cfg *Config, sprites map[tilemap.Biome]flat.SpriteSource, enemy *flat.Enemy) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := tilemap.NewGrid(cfg.MapWidth, cfg.MapHeight)
	if err != nil {
		return nil, err
	}
	world := flat.NewWorld()
	bridge := flat.NewBridge(world, sprites, enemy)
	g := &Game{
		cfg:         cfg,
		world:       world,
		camera:      flat.NewCamera(cfg.Zoom),
		bridge:      bridge,
		streamer:    stream.New(grid, tilemap.NewMapper(grid, cfg.TileLength), bridge, cfg.StreamConfig()),
		ShowHUD:     true,
		ShowMarkers: true,
	}
	g.report, err = g.streamer.Start(worldgen.New(cfg.WorldgenConfig()))
	if err != nil {
		return nil, err
	}
	if _, err := g.Step(0, 0); err != nil {
		return nil, err
	}
	return g, nil
}

// NewGameFromConfig uses the atlases and enemy prototype the config refers
// to.
func NewGameFromConfig(cfg *Config) (*Game, error) {
	return NewGame(cfg, cfg.SpriteSources(), cfg.Enemy)
}

func (g *Game) Config() *Config            { return g.cfg }
func (g *Game) Camera() *flat.Camera       { return g.camera }
func (g *Game) World() *flat.World         { return g.world }
func (g *Game) Bridge() *flat.Bridge       { return g.bridge }
func (g *Game) Streamer() *stream.Streamer { return g.streamer }
func (g *Game) Report() worldgen.Report    { return g.report }
func (g *Game) LastTick() stream.Tick      { return g.last }
func (g *Game) Kills() int                 { return g.kills }
func (g *Game) Strikes() int               { return g.strikes }

// CameraTile is the tile under the camera.
func (g *Game) CameraTile() tilemap.Coord {
	loc := g.camera.Location
	return g.streamer.Mapper().WorldToTile(loc.X, loc.Y)
}

// Step moves the camera by (dx, dy) world units and streams the new window.
func (g *Game) Step(dx, dy float64) (stream.Tick, error) {
	g.camera.Move(dx, dy)
	return g.stream()
}

// JumpTo moves the camera to the centre of tile c.
func (g *Game) JumpTo(c tilemap.Coord) (stream.Tick, error) {
	x, y := g.streamer.Mapper().TileToWorld(c)
	half := g.cfg.TileLength / 2
	g.camera.MoveTo(x+half, y+half)
	return g.stream()
}

func (g *Game) stream() (stream.Tick, error) {
	loc := g.camera.Location
	t, err := g.streamer.Update(loc.X, loc.Y)
	if err != nil {
		return t, err
	}
	g.last = t
	return t, nil
}

// Strike deals the projectile damage to every enemy under the world point
// (x, y).  Enemies brought to zero HP are defeated and removed.
func (g *Game) Strike(x, y float64) (hits, kills int, err error) {
	g.strikes++
	for _, e := range flat.FindActorsByType[*flat.Enemy](g.world) {
		if !e.Hit(x, y) {
			continue
		}
		hits++
		if !e.TakeDamage(g.cfg.ProjectileDamage) {
			continue
		}
		if err := g.streamer.DefeatEnemy(e.Handle()); err != nil {
			return hits, kills, err
		}
		kills++
	}
	g.kills += kills
	return hits, kills, nil
}

// SetExtents changes the streamed window; the next frame streams the
// difference.
func (g *Game) SetExtents(renderWidth, renderHeight int) {
	g.cfg.RenderWidth, g.cfg.RenderHeight = renderWidth, renderHeight
	g.streamer.SetExtents(renderWidth, renderHeight)
}

func (g *Game) Update() error {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.ShowHUD = !g.ShowHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.ShowMarkers = !g.ShowMarkers
	}

	g.world.Tick(tickSeconds)
	step := g.cfg.CameraSpeed * tickSeconds
	if _, err := g.Step(dx*step, dy*step); err != nil {
		return err
	}

	if !g.IgnoreMouse && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		sx, sy := ebiten.CursorPosition()
		wx, wy := g.camera.ScreenToWorld(float64(sx), float64(sy))
		hits, kills, err := g.Strike(wx, wy)
		if err != nil {
			return err
		}
		if hits > 0 {
			log.Printf("strike at (%.0f,%.0f): %d hit, %d defeated", wx, wy, hits, kills)
		}
	}
	return nil
}

var markerColor = color.RGBA{R: 230, G: 40, B: 40, A: 255}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen, g.camera)

	if g.ShowMarkers {
		for _, e := range flat.FindActorsByType[*flat.Enemy](g.world) {
			x, y := g.camera.WorldToScreen(e.Transform.Location.X, e.Transform.Location.Y)
			r := float32(e.HitRadius * g.camera.Zoom)
			vector.StrokeCircle(screen, float32(x), float32(y), r, 1, markerColor, true)
		}
	}

	if g.ShowHUD {
		ebitenutil.DebugPrintAt(screen, g.hud(), 11, 2)
	}
}

func (g *Game) hud() string {
	t := g.last
	return fmt.Sprintf("TPS: %.1f FPS: %.1f\ntile %v window %v\nmaterialized %d deferred %d\nenemies %d seeded %d defeated %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		t.Center, t.Window,
		t.Window.Area()-g.streamer.Pending(), t.Deferred,
		g.streamer.LiveEnemies(), g.report.Enemies, g.kills)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.camera.SetScreenSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
