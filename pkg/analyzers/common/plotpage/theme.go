package plotpage

// Theme represents a color theme for visualizations.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ThemeConfig holds theme-specific styling values.
type ThemeConfig struct {
	Background   string
	Surface      string
	SurfaceHover string
	Border       string

	TextPrimary   string
	TextSecondary string
	TextMuted     string

	Accent string

	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// ECharts theme name.
	EChartsTheme string
}

// ChartPalette is a consistent color palette for charts.
type ChartPalette struct {
	Primary  []string
	Semantic struct {
		Good    string
		Warning string
		Bad     string
	}
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeDark {
		return darkTheme
	}

	return lightTheme
}

// GetChartPalette returns the chart color palette for a given theme.
func GetChartPalette(theme Theme) ChartPalette {
	if theme == ThemeDark {
		return darkChartPalette
	}

	return lightChartPalette
}

var lightTheme = ThemeConfig{
	Background:   "#fafaf9",
	Surface:      "#ffffff",
	SurfaceHover: "#f5f5f4",
	Border:       "#e7e5e4",

	TextPrimary:   "#1c1917",
	TextSecondary: "#44403c",
	TextMuted:     "#78716c",

	Accent: "#a16207",

	ChartBackground: "transparent",
	ChartGrid:       "#e7e5e4",
	ChartAxis:       "#a8a29e",
	ChartText:       "#44403c",
	ChartTextMuted:  "#78716c",

	EChartsTheme: "",
}

var darkTheme = ThemeConfig{
	Background:   "#0c0a09",
	Surface:      "#1c1917",
	SurfaceHover: "#292524",
	Border:       "#44403c",

	TextPrimary:   "#fafaf9",
	TextSecondary: "#d6d3d1",
	TextMuted:     "#a8a29e",

	Accent: "#d97706",

	ChartBackground: "transparent",
	ChartGrid:       "#44403c",
	ChartAxis:       "#57534e",
	ChartText:       "#d6d3d1",
	ChartTextMuted:  "#a8a29e",

	EChartsTheme: "",
}

var lightChartPalette = ChartPalette{
	Primary: []string{
		"#a16207", // amber-700.
		"#0369a1", // sky-700.
		"#4d7c0f", // lime-700.
		"#7c3aed", // violet-600.
		"#be185d", // pink-700.
		"#0891b2", // cyan-600.
	},
	Semantic: struct {
		Good    string
		Warning string
		Bad     string
	}{
		Good:    "#16a34a",
		Warning: "#ca8a04",
		Bad:     "#dc2626",
	},
}

var darkChartPalette = ChartPalette{
	Primary: []string{
		"#fbbf24", // amber-400.
		"#38bdf8", // sky-400.
		"#a3e635", // lime-400.
		"#a78bfa", // violet-400.
		"#f472b6", // pink-400.
		"#22d3ee", // cyan-400.
	},
	Semantic: struct {
		Good    string
		Warning string
		Bad     string
	}{
		Good:    "#22c55e",
		Warning: "#eab308",
		Bad:     "#ef4444",
	},
}
