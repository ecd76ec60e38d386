package theme

// thRegisterBuiltins registers all built-in themes in the registry.
func thRegisterBuiltins() {
	for _, t := range []Theme{
		Default(),
		thNightTheme(),
		thHighContrastTheme(),
	} {
		Register(t)
	}
}

// thTeams is the broadcast team colour table.
var thTeams = []string{
	"#1e41ae",
	"#dc0000",
	"#00d2be",
	"#ff8700",
	"#009036",
	"#2557a4",
	"#af202d",
	"#2b4562",
	"#6cd3bf",
	"#b6babd",
}

// Default returns the broadcast-style dark theme.
func Default() Theme {
	return Theme{
		Name:       "default",
		Panel:      "#141414",
		PanelAlt:   "#282828",
		Foreground: "#ffffff",
		Dim:        "#969696",
		Highlight:  "#3c3c3c",

		BorderDrag:   "#ffff00",
		BorderResize: "#ff6400",
		BorderHover:  "#c8c8c8",

		Good: "#00c800",
		Warn: "#ffa500",
		Crit: "#dc0000",

		Throttle: "#00dc3c",
		Brake:    "#f03232",
		Steering: "#f0c800",

		LapBox:    "#c81e1e",
		EnergyBox: "#1e50c8",

		StatusFG: "#ffff00",
		StatusBG: "#000000",

		Teams: append([]string(nil), thTeams...),
	}
}

// thNightTheme trades the black panels for a blue-grey night palette.
func thNightTheme() Theme {
	t := Default()
	t.Name = "night"
	t.Panel = "#1a1b26"
	t.PanelAlt = "#24283b"
	t.Foreground = "#c0caf5"
	t.Dim = "#565f89"
	t.Highlight = "#2f3549"
	t.BorderHover = "#7aa2f7"
	t.StatusBG = "#1a1b26"
	return t
}

// thHighContrastTheme maximises legibility on bright backgrounds.
func thHighContrastTheme() Theme {
	t := Default()
	t.Name = "high-contrast"
	t.Panel = "#000000"
	t.PanelAlt = "#000000"
	t.Dim = "#d0d0d0"
	t.Highlight = "#303030"
	t.BorderHover = "#ffffff"
	t.Good = "#00ff00"
	t.Warn = "#ffff00"
	t.Crit = "#ff0000"
	return t
}
