package terminal

// Named RGB swatches for building gradient themes without scattering
// raw {R,G,B} literals through pattern/theme code. These are plain color
// values with no rendering semantics attached; callers pick stops from
// here (or write their own RGB{}) and hand them to whatever palette
// type they're building.
//
// Ordered dark-to-light within each hue group; named by closest common
// color name where one exists, descriptively otherwise.
var (
	// --- Achromatic ---
	Black     = RGB{0, 0, 0}
	Obsidian  = RGB{20, 20, 30} // blue-black
	Gunmetal  = RGB{26, 27, 38} // blue-tinted near-black
	DimGray   = RGB{55, 55, 55}
	SlateGray = RGB{80, 80, 90} // cool-tinted
	MidGray   = RGB{128, 128, 128}
	Silver    = RGB{180, 180, 180}
	NearWhite = RGB{250, 250, 250}
	White     = RGB{255, 255, 255}

	// --- Red / Orange ---
	DarkBurgundy = RGB{100, 25, 20}
	Brick        = RGB{180, 40, 40}
	Vermilion    = RGB{227, 66, 82}
	Red          = RGB{255, 0, 0}
	Coral        = RGB{255, 80, 80}
	Rust         = RGB{180, 60, 20}
	BurntOrange  = RGB{200, 110, 0}
	TigerOrange  = RGB{255, 140, 0}
	Apricot      = RGB{255, 160, 60}

	// --- Yellow ---
	DarkGold    = RGB{200, 150, 0}
	Gold        = RGB{255, 215, 0}
	LemonYellow = RGB{255, 240, 60}
	Ivory       = RGB{255, 255, 220}

	// --- Green ---
	DeepForest   = RGB{25, 80, 35}
	ForestGreen  = RGB{34, 139, 34}
	LeafGreen    = RGB{60, 160, 60}
	EmeraldGreen = RGB{60, 220, 100}
	NeonGreen    = RGB{50, 255, 50}
	PaleMint     = RGB{150, 255, 180}

	// --- Cyan / Teal ---
	Teal        = RGB{0, 139, 139}
	VibrantCyan = RGB{0, 200, 200}
	Cyan        = RGB{0, 255, 255}
	IceCyan     = RGB{240, 255, 255}

	// --- Blue ---
	DeepNavy   = RGB{15, 25, 50}
	NavyBlue   = RGB{30, 60, 120}
	RoyalBlue  = RGB{65, 105, 225}
	DodgerBlue = RGB{40, 180, 255}
	BabyBlue   = RGB{160, 210, 255}
	Blue       = RGB{0, 0, 255}

	// --- Purple / Violet ---
	DeepPurple     = RGB{60, 20, 80}
	DarkViolet     = RGB{120, 40, 180}
	ElectricViolet = RGB{180, 130, 255}
	PaleLavender   = RGB{220, 180, 255}

	// --- Pink / Rose ---
	HotMagenta = RGB{255, 60, 200}
	HotPink    = RGB{255, 140, 200}
	Magenta    = RGB{255, 0, 255}
)
