// Package devtools renders generated runs as text for inspection and for
// comparing runs across seeds and builds.
package devtools

import (
	"fmt"
	"hash/fnv"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/samdwyer/shardcrawler/internal/entity"
	"github.com/samdwyer/shardcrawler/internal/grid"
	"github.com/samdwyer/shardcrawler/internal/world"
)

// DumpOptions controls map dump layout.
type DumpOptions struct {
	Width int  // Terminal width used to place rooms side by side
	Color bool // Emit ANSI colors
}

const roomGap = 2

var (
	styleWall   = color.Style{color.FgGray}
	styleFloor  = color.Style{color.FgBlue}
	styleDoor   = color.Style{color.FgYellow, color.OpBold}
	styleSpawn  = color.Style{color.FgGreen, color.OpBold}
	styleShard  = color.Style{color.FgLightYellow}
	styleItem   = color.Style{color.FgMagenta}
	styleHazard = color.Style{color.FgRed}
	stylePortal = color.Style{color.FgCyan, color.OpBold}
	styleHeader = color.Style{color.FgWhite, color.OpBold}
)

// Dump writes every room of the run, one depth per block.
func Dump(w io.Writer, gen *world.Generation, opts DumpOptions) error {
	header := fmt.Sprintf("seed %q (#%d) difficulty %s fingerprint %s",
		gen.SeedString, gen.Seed, gen.Difficulty, Fingerprint(gen))
	if _, err := fmt.Fprintln(w, paint(opts, styleHeader, header)); err != nil {
		return err
	}

	for depth, layout := range gen.Layouts {
		title := fmt.Sprintf("depth %d (lock %d, key %d)",
			depth+1, layout.LockedDoorRoomIndex+1, layout.KeyRoomIndex+1)
		if _, err := fmt.Fprintf(w, "\n%s\n", paint(opts, styleHeader, title)); err != nil {
			return err
		}
		if err := dumpRooms(w, layout.Rooms, opts); err != nil {
			return err
		}
	}
	return nil
}

// dumpRooms prints rooms in rows that fit opts.Width.
func dumpRooms(w io.Writer, rooms []world.Room, opts DumpOptions) error {
	perRow := max(1, (opts.Width+roomGap)/(world.BaseRoomSize.Width+roomGap))

	for start := 0; start < len(rooms); start += perRow {
		row := rooms[start:min(start+perRow, len(rooms))]

		height := 0
		for _, room := range row {
			height = max(height, room.TileMap.Size.Height)
		}

		var b strings.Builder
		for i, room := range row {
			caption := fmt.Sprintf("room %d q%d", start+i+1, room.ShardTarget)
			b.WriteString(pad(caption, world.BaseRoomSize.Width+roomGap))
		}
		b.WriteString("\n")

		for y := 0; y < height; y++ {
			for _, room := range row {
				cells := roomLine(&room, y, opts)
				b.WriteString(cells)
				b.WriteString(strings.Repeat(" ", world.BaseRoomSize.Width-room.TileMap.Size.Width+roomGap))
			}
			b.WriteString("\n")
		}

		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// roomLine renders row y of a room, or blank padding past its height.
func roomLine(room *world.Room, y int, opts DumpOptions) string {
	size := room.TileMap.Size
	if y >= size.Height {
		return strings.Repeat(" ", size.Width)
	}

	var b strings.Builder
	for x := 0; x < size.Width; x++ {
		ch, style := cellGlyph(room, grid.Point{X: x, Y: y})
		b.WriteString(paint(opts, style, string(ch)))
	}
	return b.String()
}

// cellGlyph picks the topmost thing at p: spawn, portal, hazard, item,
// shard, then terrain.
func cellGlyph(room *world.Room, p grid.Point) (rune, color.Style) {
	if p == room.Spawn {
		return '@', styleSpawn
	}
	if room.Portal != nil && room.Portal.At(p) {
		return room.Portal.Symbol(), stylePortal
	}
	if h := room.HazardAt(p); h != nil {
		return h.Kind.Symbol(), styleHazard
	}
	if it := room.ItemAt(p); it != nil {
		return it.Kind.Symbol(), styleItem
	}
	if s := room.ShardAt(p); s != nil {
		return s.Symbol(), styleShard
	}

	tile := room.TileMap.At(p)
	switch tile.Kind {
	case world.TileWall:
		return tile.Rune(), styleWall
	case world.TileDoor, world.TileLockedDoor:
		return tile.Rune(), styleDoor
	default:
		return tile.Rune(), styleFloor
	}
}

func paint(opts DumpOptions, style color.Style, text string) string {
	if !opts.Color {
		return text
	}
	return style.Sprint(text)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Fingerprint hashes every tile and entity of a run. Two runs with the same
// fingerprint are identical for all practical purposes.
func Fingerprint(gen *world.Generation) string {
	h := fnv.New64a()
	for _, layout := range gen.Layouts {
		fmt.Fprintf(h, "L%d,%d;", layout.LockedDoorRoomIndex, layout.KeyRoomIndex)
		for _, room := range layout.Rooms {
			fmt.Fprintf(h, "R%dx%d@%v q%d;", room.TileMap.Size.Width, room.TileMap.Size.Height, room.Spawn, room.ShardTarget)
			for _, tile := range room.TileMap.Tiles {
				h.Write([]byte{byte(tile.Kind)})
			}
			for _, s := range room.Shards {
				fmt.Fprintf(h, "s%d%v", s.ID, s.Pos)
			}
			if room.Portal != nil {
				fmt.Fprintf(h, "o%d%v", room.Portal.ID, room.Portal.Pos)
			}
			for _, hz := range room.Hazards {
				writeHazard(h, hz)
			}
			for _, it := range room.Items {
				fmt.Fprintf(h, "i%d%s%v", it.ID, it.Kind, it.Pos)
			}
		}
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func writeHazard(w io.Writer, hz entity.Hazard) {
	fmt.Fprintf(w, "h%d%s%v", hz.ID, hz.Kind, hz.Pos)
	switch hz.Kind {
	case entity.HazardSentinel:
		fmt.Fprintf(w, "d%d", hz.Delay)
	case entity.HazardTurret:
		fmt.Fprintf(w, "f%v r%d", hz.Facing, hz.FireRate)
	case entity.HazardSpike:
		fmt.Fprintf(w, "c%d", hz.CycleLength)
	}
}
