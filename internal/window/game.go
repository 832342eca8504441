// Package window hosts the board in an ebiten window: it forwards pointer and
// key events to the input router and blits the raster canvas every frame.
package window

import (
	"context"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"evolve/internal/input"
	"evolve/pkg/domain"
)

// Handler receives events in grid coordinates.
type Handler interface {
	DispatchClick(ctx context.Context, button domain.Button, x, y float64) error
	DispatchKey(ctx context.Context, key domain.Key) error
	Quitting() bool
}

// Frames supplies the pixels to show.
type Frames interface {
	Frame() *image.RGBA
	Version() uint64
}

// Logger is the logging surface used for dispatch failures.
type Logger interface {
	Error(msg string, args ...any)
}

// Config sizes and names the window.
type Config struct {
	Width  int
	Height int
	Title  string
}

var buttons = map[ebiten.MouseButton]domain.Button{
	ebiten.MouseButtonLeft:  domain.ButtonLeft,
	ebiten.MouseButtonRight: domain.ButtonRight,
}

var keys = map[ebiten.Key]domain.Key{
	ebiten.KeyQ:      domain.KeyQuit,
	ebiten.KeyEscape: domain.KeyQuit,
	ebiten.KeyS:      domain.KeySnapshot,
}

// Game implements ebiten.Game.
type Game struct {
	ctx     context.Context
	cfg     Config
	handler Handler
	frames  Frames
	logger  Logger

	surface *ebiten.Image
	shown   uint64
}

// NewGame binds handler and frames to a window described by cfg.
func NewGame(ctx context.Context, cfg Config, handler Handler, frames Frames, logger Logger) *Game {
	return &Game{ctx: ctx, cfg: cfg, handler: handler, frames: frames, logger: logger}
}

// Update polls input once per tick.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	for eb, button := range buttons {
		if !inpututil.IsMouseButtonJustPressed(eb) {
			continue
		}
		cx, cy := ebiten.CursorPosition()
		gx, gy := input.ScreenToGrid(cx, cy, g.cfg.Height)
		if err := g.handler.DispatchClick(g.ctx, button, gx, gy); err != nil {
			g.logger.Error("click dispatch failed", "button", button.String(), "error", err)
		}
	}
	for eb, key := range keys {
		if !inpututil.IsKeyJustPressed(eb) {
			continue
		}
		if err := g.handler.DispatchKey(g.ctx, key); err != nil {
			g.logger.Error("key dispatch failed", "key", string(key), "error", err)
		}
	}
	if g.handler.Quitting() {
		return ebiten.Termination
	}
	return nil
}

// Draw uploads the canvas when it has changed and paints it.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.surface == nil {
		g.surface = ebiten.NewImage(g.cfg.Width, g.cfg.Height)
		g.shown = 0
	}
	if v := g.frames.Version(); v != g.shown {
		g.surface.WritePixels(g.frames.Frame().Pix)
		g.shown = v
	}
	screen.DrawImage(g.surface, nil)
}

// Layout fixes the logical screen to the board size.
func (g *Game) Layout(int, int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens the window and blocks until the player quits or ctx ends.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	return ebiten.RunGame(g)
}
