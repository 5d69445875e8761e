package engine

// Palette is an ordered, immutable list of "#rrggbb" colours.
// Bucket i is drawn with colour i mod len(palette).
type Palette []string

// MinPaletteSize is the smallest palette the layout engines accept.
const MinPaletteSize = 6

// DefaultPalette is the twelve-colour chart palette.
var DefaultPalette = Palette{
	"#6496FA", // blue
	"#FA9664", // orange
	"#64FA96", // green
	"#FA6496", // pink
	"#9664FA", // purple
	"#96FA64", // lime
	"#64C8FA", // light blue
	"#FAC864", // light orange
	"#64FAC8", // mint
	"#FA64C8", // magenta
	"#C864FA", // violet
	"#C8FA64", // yellow-green
}

// Index maps a bucket index onto the palette.
func (p Palette) Index(i int) int {
	if i < 0 {
		i = -i
	}
	return i % p.Size()
}

// Color returns the colour for bucket i.
func (p Palette) Color(i int) string {
	if len(p) == 0 {
		return DefaultPalette[DefaultPalette.Index(i)]
	}
	return p[p.Index(i)]
}

// Size returns the number of colours, falling back to the default palette's size.
func (p Palette) Size() int {
	if len(p) == 0 {
		return len(DefaultPalette)
	}
	return len(p)
}
