package theme

const shadow = "rgba(0,0,0,0.2)"

var registry = [...]Theme{
	{
		ID:          IDTower,
		Name:        "Turmuhr",
		Icon:        "🏰",
		Description: "Mittelalterliche Turmuhr",
		Colors: Palette{
			OuterRing:         "#4a3728",
			OuterRingStroke:   "#2d1f14",
			FaceGradientStart: "#f5e6d3",
			FaceGradientEnd:   "#d4b896",
			HourMarker:        "#2d1f14",
			MinuteMarker:      "#6b5344",
			Numbers:           "#2d1f14",
			HourHand:          "#2d1f14",
			MinuteHand:        "#8b0000",
			CenterOuter:       "#2d1f14",
			CenterInner:       "#8b0000",
			HandleHour:        "#2d1f14",
			HandleMinute:      "#8b0000",
			HandShadow:        shadow,
		},
		RomanNumerals: true,
		Numerals:      Font{Family: "Times New Roman, serif", Size: 11, Weight: "bold"},
		Decoration: Tower{
			Stones:      8,
			StoneRadius: 94,
			StoneColor:  "#5d4037",
			SpireColor:  "#4a3728",
			KnobColor:   "#6d4c41",
		},
	},
	{
		ID:          IDCuckoo,
		Name:        "Kuckucksuhr",
		Icon:        "🐦",
		Description: "Traditionelle Kuckucksuhr",
		Colors: Palette{
			OuterRing:         "#5d4037",
			OuterRingStroke:   "#3e2723",
			FaceGradientStart: "#fff8e1",
			FaceGradientEnd:   "#ffe0b2",
			HourMarker:        "#3e2723",
			MinuteMarker:      "#8d6e63",
			Numbers:           "#3e2723",
			HourHand:          "#3e2723",
			MinuteHand:        "#1b5e20",
			CenterOuter:       "#3e2723",
			CenterInner:       "#1b5e20",
			HandleHour:        "#3e2723",
			HandleMinute:      "#2e7d32",
			HandShadow:        shadow,
		},
		Numerals: Font{Family: "Georgia, serif", Size: 13, Weight: "bold"},
		Decoration: Cuckoo{
			GrainColor:    "#8d6e63",
			PatternStroke: "#4e342e",
			LeafColor:     "#2e7d32",
			LeafHighlight: "#388e3c",
			BirdColor:     "#ff8f00",
			BeakColor:     "#e65100",
			AcornColor:    "#8d6e63",
			AcornCap:      "#5d4037",
		},
	},
	{
		ID:          IDWatch,
		Name:        "Armbanduhr",
		Icon:        "⌚",
		Description: "Moderne Armbanduhr",
		Colors: Palette{
			OuterRing:         "#37474f",
			OuterRingStroke:   "#263238",
			FaceGradientStart: "#ffffff",
			FaceGradientEnd:   "#e3f2fd",
			HourMarker:        "#263238",
			MinuteMarker:      "#90a4ae",
			Numbers:           "#263238",
			HourHand:          "#263238",
			MinuteHand:        "#1976d2",
			CenterOuter:       "#263238",
			CenterInner:       "#1976d2",
			HandleHour:        "#263238",
			HandleMinute:      "#1976d2",
			HandShadow:        shadow,
		},
		Numerals: Font{Family: "Arial, sans-serif", Size: 12, Weight: "bold"},
		Decoration: Watch{
			Brand:      "CHRONO",
			BrandColor: "#1976d2",
			CrownColor: "#455a64",
			CrownCap:   "#546e7a",
			RidgeColor: "#37474f",
			DateFrame:  "#90a4ae",
			DateColor:  "#263238",
			Metal:      [3]string{"#607d8b", "#37474f", "#263238"},
		},
	},
	{
		ID:          IDLearning,
		Name:        "Lernuhr",
		Icon:        "🎓",
		Description: "Bunte Lernuhr mit Minuten",
		Colors: Palette{
			OuterRing:         "#ffffff",
			OuterRingStroke:   "#e0e0e0",
			FaceGradientStart: "#ffffff",
			FaceGradientEnd:   "#ffffff",
			HourMarker:        "#333333",
			MinuteMarker:      "#666666",
			Numbers:           "#ffffff",
			HourHand:          "#1a1a1a",
			MinuteHand:        "#1a1a1a",
			CenterOuter:       "#ffffff",
			CenterInner:       "#e53935",
			HandleHour:        "#333333",
			HandleMinute:      "#e53935",
			HandShadow:        shadow,
		},
		Numerals: Font{Family: "Arial, sans-serif", Size: 18, Weight: "bold"},
		Decoration: Learning{
			Sectors: [12]Sector{
				{Light: "#ef5350", Dark: "#c62828"},
				{Light: "#ff7043", Dark: "#e64a19"},
				{Light: "#ffb74d", Dark: "#f57c00"},
				{Light: "#fff176", Dark: "#fbc02d"},
				{Light: "#dce775", Dark: "#afb42b"},
				{Light: "#aed581", Dark: "#689f38"},
				{Light: "#81c784", Dark: "#388e3c"},
				{Light: "#4db6ac", Dark: "#00897b"},
				{Light: "#4fc3f7", Dark: "#0288d1"},
				{Light: "#9575cd", Dark: "#512da8"},
				{Light: "#ba68c8", Dark: "#7b1fa2"},
				{Light: "#f06292", Dark: "#c2185b"},
			},
			Radii: LearningRadii{
				Outer:         98,
				MinuteInner:   85,
				MinuteLabel:   91.5,
				HourInner:     38,
				HourNumeral:   64,
				Hour24Numeral: 48,
				Hub:           30,
			},
		},
	},
}

var index = func() map[ID]int {
	m := make(map[ID]int, len(registry))
	for i, th := range registry {
		m[th.ID] = i
	}
	return m
}()
