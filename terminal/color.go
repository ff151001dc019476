package terminal

import (
	"os"
	"strings"
)

// ColorMode indicates how a terminal expects color values: as a
// 256-entry palette index or as 24-bit RGB triples.
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm 256-color palette
	ColorModeTrueColor                  // 24-bit RGB
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black.
var RGBBlack = RGB{0, 0, 0}

// paletteCubeLevels are the six intensity steps xterm's 6x6x6 color
// cube uses for each channel, indexed by the 0-5 coordinate CubeRGB256
// returns.
var paletteCubeLevels = [6]int{0, 95, 135, 175, 215, 255}

// redmeanLUT is a 6-bit-quantized (64^3) lookup table from RGB to the
// nearest 256-palette index, precomputed once at startup so RGBTo256 is
// an O(1) array read instead of a per-call nearest-neighbor search.
// 64*64*64 = 262144 bytes, sized to fit comfortably in L2 cache.
var redmeanLUT [64 * 64 * 64]uint8

func init() {
	for r := 0; r < 64; r++ {
		for g := 0; g < 64; g++ {
			for b := 0; b < 64; b++ {
				// Expand the 6-bit quantized channel back to 8-bit,
				// landing on the bucket's midpoint rather than its floor.
				r8 := (r << 2) | 2
				g8 := (g << 2) | 2
				b8 := (b << 2) | 2
				redmeanLUT[r<<12|g<<6|b] = nearestPaletteIndex(r8, g8, b8)
			}
		}
	}
}

// nearestPaletteIndex finds the 256-palette index closest to (r,g,b)
// under the redmean color-distance metric. Only called from init.
func nearestPaletteIndex(r, g, b int) uint8 {
	if r == g && g == b {
		switch {
		case r < 8:
			return 16
		case r > 238:
			return 231
		default:
			return uint8(232 + (r-8)/10)
		}
	}

	best := uint8(16)
	bestDist := 1 << 30

	for i := 0; i < 216; i++ {
		cr := paletteCubeLevels[i/36]
		cg := paletteCubeLevels[(i/6)%6]
		cb := paletteCubeLevels[i%6]
		if d := redmeanDistance(r, g, b, cr, cg, cb); d < bestDist {
			bestDist = d
			best = uint8(16 + i)
		}
	}

	for i := 0; i < 24; i++ {
		gray := 8 + i*10
		if d := redmeanDistance(r, g, b, gray, gray, gray); d < bestDist {
			bestDist = d
			best = uint8(232 + i)
		}
	}

	return best
}

// redmeanDistance is the low-cost, perceptually-weighted RGB distance
// approximation from https://en.wikipedia.org/wiki/Color_difference#sRGB.
func redmeanDistance(r1, g1, b1, r2, g2, b2 int) int {
	rmean := (r1 + r2) / 2
	dr, dg, db := r1-r2, g1-g2, b1-b2
	return (((512+rmean)*dr*dr)>>8) + 4*dg*dg + (((767-rmean)*db*db)>>8)
}

// RGBTo256 converts c to the nearest xterm 256-color palette index via
// the precomputed redmean LUT.
func RGBTo256(c RGB) uint8 {
	return redmeanLUT[int(c.R>>2)<<12|int(c.G>>2)<<6|int(c.B>>2)]
}

// DetectColorMode infers terminal color capability from the environment
// this process was launched in.
func DetectColorMode() ColorMode {
	if ct := os.Getenv("COLORTERM"); ct == "truecolor" || ct == "24bit" {
		return ColorModeTrueColor
	}

	for _, v := range []string{
		os.Getenv("KITTY_WINDOW_ID"),
		os.Getenv("KONSOLE_VERSION"),
		os.Getenv("ITERM_SESSION_ID"),
		os.Getenv("ALACRITTY_WINDOW_ID"),
		os.Getenv("ALACRITTY_LOG"),
		os.Getenv("WEZTERM_PANE"),
	} {
		if v != "" {
			return ColorModeTrueColor
		}
	}

	term := os.Getenv("TERM")
	if strings.Contains(term, "truecolor") || strings.Contains(term, "24bit") || strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}
