package gamedata

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// PaletteDef is a named set of hex colors loaded from palettes.json.
type PaletteDef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Background string `json:"background"`
	Floor      string `json:"floor"`
	Wall       string `json:"wall"`
	Accent     string `json:"accent"`
	Hazard     string `json:"hazard"`
	Shard      string `json:"shard"`
	Portal     string `json:"portal"`
	Fog        string `json:"fog"`
	Text       string `json:"text"`
}

// PalettesFile represents the structure of palettes.json.
type PalettesFile struct {
	Palettes []PaletteDef `json:"palettes"`
}

// Palette is a PaletteDef resolved to terminal colors.
type Palette struct {
	Background tcell.Color
	Floor      tcell.Color
	Wall       tcell.Color
	Accent     tcell.Color
	Hazard     tcell.Color
	Shard      tcell.Color
	Portal     tcell.Color
	Fog        tcell.Color
	Text       tcell.Color
}

var loadPalettes = sync.OnceValues(func() ([]PaletteDef, error) {
	file, err := Load[PalettesFile]("palettes.json")
	if err != nil {
		return nil, err
	}
	return file.Palettes, nil
})

// PaletteIDs lists the available palette identifiers in file order.
func PaletteIDs() []string {
	defs, err := loadPalettes()
	if err != nil {
		return nil
	}
	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = d.ID
	}
	return ids
}

// LoadPalette resolves the palette with the given id. Unknown ids fall back
// to the first palette in the file.
func LoadPalette(id string) (Palette, error) {
	defs, err := loadPalettes()
	if err != nil {
		return Palette{}, err
	}
	if len(defs) == 0 {
		return Palette{}, fmt.Errorf("no palettes loaded from palettes.json")
	}
	def := defs[0]
	for _, d := range defs {
		if d.ID == id {
			def = d
			break
		}
	}
	return def.Resolve()
}

// Resolve converts every hex color in the definition.
func (d PaletteDef) Resolve() (Palette, error) {
	var p Palette
	fields := []struct {
		hex string
		dst *tcell.Color
	}{
		{d.Background, &p.Background},
		{d.Floor, &p.Floor},
		{d.Wall, &p.Wall},
		{d.Accent, &p.Accent},
		{d.Hazard, &p.Hazard},
		{d.Shard, &p.Shard},
		{d.Portal, &p.Portal},
		{d.Fog, &p.Fog},
		{d.Text, &p.Text},
	}
	for _, f := range fields {
		c, err := ParseHexColor(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("palette %s: %w", d.ID, err)
		}
		*f.dst = c
	}
	return p, nil
}
