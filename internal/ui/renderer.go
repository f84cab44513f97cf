package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/shardcrawler/internal/entity"
	"github.com/samdwyer/shardcrawler/internal/gamedata"
	"github.com/samdwyer/shardcrawler/internal/grid"
	"github.com/samdwyer/shardcrawler/internal/world"
)

// Frame is a read-only snapshot of everything drawn in one frame.
type Frame struct {
	Room        *world.Room
	Fog         []bool // Cells visible this turn
	Player      *entity.Player
	Projectiles []entity.Projectile
	HUD         []string   // Status lines drawn under the map
	Message     string     // Latest advisory line
	Overlay     []string   // Centered panel for title, pause and summary screens
	Offset      grid.Point // Screen-shake displacement
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	palette gamedata.Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// SetPalette switches colors for subsequent frames.
func (r *Renderer) SetPalette(p gamedata.Palette) {
	r.palette = p
}

// Render draws the room, its entities, the HUD and any overlay.
func (r *Renderer) Render(f Frame) {
	r.screen.Fill(' ', r.base())

	if f.Room != nil {
		r.drawRoom(f)
		r.drawEntities(f)

		y := f.Room.TileMap.Size.Height + 1
		for _, line := range f.HUD {
			r.RenderText(line, 0, y, r.base().Foreground(r.palette.Text))
			y++
		}
		if f.Message != "" {
			r.RenderText(f.Message, 0, y, r.base().Foreground(r.palette.Accent))
		}
	}

	if len(f.Overlay) > 0 {
		r.drawOverlay(f.Overlay)
	}

	r.screen.Show()
}

func (r *Renderer) base() tcell.Style {
	return tcell.StyleDefault.Background(r.palette.Background).Foreground(r.palette.Text)
}

func (r *Renderer) drawRoom(f Frame) {
	tm := f.Room.TileMap
	for i, tile := range tm.Tiles {
		p := tm.Size.PointAt(i)
		visible := i < len(f.Fog) && f.Fog[i]
		if !visible && !f.Room.Seen[i] {
			continue
		}
		style := r.tileStyle(tile)
		if !visible {
			style = style.Dim(true)
		}
		r.set(f, p, tile.Rune(), style)
	}
}

func (r *Renderer) drawEntities(f Frame) {
	tm := f.Room.TileMap
	visible := func(p grid.Point) bool {
		i := tm.Size.Index(p)
		return i < len(f.Fog) && f.Fog[i]
	}
	seen := func(p grid.Point) bool {
		return visible(p) || f.Room.Seen[tm.Size.Index(p)]
	}

	if portal := f.Room.Portal; portal != nil && portal.Alive && seen(portal.Pos) {
		style := r.base().Foreground(r.palette.Portal)
		if portal.Active {
			style = style.Bold(true)
		}
		r.set(f, portal.Pos, portal.Symbol(), style)
	}

	for _, s := range f.Room.Shards {
		if s.Alive && visible(s.Pos) {
			r.set(f, s.Pos, s.Symbol(), r.base().Foreground(r.palette.Shard))
		}
	}
	for _, it := range f.Room.Items {
		if it.Alive && visible(it.Pos) {
			r.set(f, it.Pos, it.Kind.Symbol(), r.base().Foreground(r.palette.Accent))
		}
	}
	for _, h := range f.Room.Hazards {
		if !h.Alive || !visible(h.Pos) {
			continue
		}
		style := r.base().Foreground(r.palette.Hazard)
		if h.Kind == entity.HazardSpike && !h.Active {
			style = style.Dim(true)
		}
		r.set(f, h.Pos, h.Kind.Symbol(), style)
	}
	for _, p := range f.Projectiles {
		if p.Alive && seen(p.Pos) {
			r.set(f, p.Pos, p.Symbol(), r.base().Foreground(r.palette.Hazard).Bold(true))
		}
	}

	if f.Player != nil {
		r.set(f, f.Player.Pos, f.Player.Symbol, r.base().Foreground(r.palette.Accent).Bold(true))
	}
}

// tileStyle returns the appropriate style for a tile type.
func (r *Renderer) tileStyle(tile world.Tile) tcell.Style {
	switch tile.Kind {
	case world.TileWall:
		return r.base().Foreground(r.palette.Wall)
	case world.TileFloor:
		return r.base().Foreground(r.palette.Floor)
	case world.TileDoor:
		return r.base().Foreground(r.palette.Accent)
	case world.TileLockedDoor:
		return r.base().Foreground(r.palette.Hazard).Bold(true)
	default:
		return r.base().Foreground(r.palette.Fog)
	}
}

func (r *Renderer) set(f Frame, p grid.Point, ch rune, style tcell.Style) {
	r.screen.SetContent(p.X+f.Offset.X, p.Y+f.Offset.Y, ch, style)
}

func (r *Renderer) drawOverlay(lines []string) {
	width, height := r.screen.Size()
	longest := 0
	for _, line := range lines {
		longest = max(longest, len([]rune(line)))
	}

	top := max(0, (height-len(lines))/2)
	left := max(0, (width-longest)/2)
	style := r.base().Foreground(r.palette.Text).Reverse(true)
	for i, line := range lines {
		padded := []rune(line)
		for len(padded) < longest {
			padded = append(padded, ' ')
		}
		r.RenderText(string(padded), left, top+i, style)
	}
}

// RenderText draws text starting at (x, y).
func (r *Renderer) RenderText(msg string, x, y int, style tcell.Style) {
	i := 0
	for _, ch := range msg {
		r.screen.SetContent(x+i, y, ch, style)
		i++
	}
}
