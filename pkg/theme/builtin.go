package theme

// thDefaultTheme matches the original panel colors: white labels, yellow
// warning, red critical.
func thDefaultTheme() Theme {
	return Theme{
		Name:   "default",
		Label:  "#d4d4d4",
		Value:  "#ffffff",
		Dim:    "#6b6b6b",
		Accent: "#76b900",

		Border: "#3e3e3e",
		Title:  "#d4d4d4",

		BandNormal:   "#ffffff",
		BandWarning:  "#fffb00",
		BandCritical: "#ff0000",

		GaugeFilled: "#4ec970",
		GaugeEmpty:  "#3e3e3e",
		GaugeWarn:   "#e5c07b",
		GaugeCrit:   "#e06c75",
	}
}

// thNordTheme returns the arctic blue Nord palette.
func thNordTheme() Theme {
	return Theme{
		Name:   "nord",
		Label:  "#d8dee9",
		Value:  "#eceff4",
		Dim:    "#4c566a",
		Accent: "#88c0d0",

		Border: "#3b4252",
		Title:  "#eceff4",

		BandNormal:   "#a3be8c",
		BandWarning:  "#ebcb8b",
		BandCritical: "#bf616a",

		GaugeFilled: "#a3be8c",
		GaugeEmpty:  "#3b4252",
		GaugeWarn:   "#ebcb8b",
		GaugeCrit:   "#bf616a",
	}
}

// thGruvboxTheme returns the warm retro Gruvbox palette.
func thGruvboxTheme() Theme {
	return Theme{
		Name:   "gruvbox",
		Label:  "#ebdbb2",
		Value:  "#fbf1c7",
		Dim:    "#928374",
		Accent: "#fe8019",

		Border: "#504945",
		Title:  "#ebdbb2",

		BandNormal:   "#b8bb26",
		BandWarning:  "#fabd2f",
		BandCritical: "#fb4934",

		GaugeFilled: "#b8bb26",
		GaugeEmpty:  "#504945",
		GaugeWarn:   "#fabd2f",
		GaugeCrit:   "#fb4934",
	}
}

// thMonoTheme is a grayscale palette for terminals where color is
// distracting; bands are distinguished only by brightness.
func thMonoTheme() Theme {
	return Theme{
		Name:   "mono",
		Label:  "#bbbbbb",
		Value:  "#eeeeee",
		Dim:    "#555555",
		Accent: "#ffffff",

		Border: "#444444",
		Title:  "#dddddd",

		BandNormal:   "#bbbbbb",
		BandWarning:  "#eeeeee",
		BandCritical: "#ffffff",

		GaugeFilled: "#999999",
		GaugeEmpty:  "#333333",
		GaugeWarn:   "#cccccc",
		GaugeCrit:   "#ffffff",
	}
}
