package core

// Color represents a cell color. The platform layer maps each value to an
// ANSI 256-color foreground and background pair.
type Color uint8

// Tile palette, ordered by tile exponent, followed by UI colors.
const (
	ColorDefault Color = iota
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTileSuper // Anything above 2048
	ColorGrid
	ColorTitle
	ColorMuted
	ColorAlert
)

// TileColor returns the palette entry for a tile value. Empty cells use ColorDefault.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorDefault
	}
	c := ColorTile2
	for v := 2; v < value; v <<= 1 {
		c++
		if c == ColorTileSuper {
			break
		}
	}
	return c
}
