package maintain

import (
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/plotpage"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

const (
	topFilesLimit    = 20
	xAxisRotate      = 45
	emptyChartHeight = "400px"
)

// FormatReportPlot generates an HTML plot visualization for maintainability
// analysis.
func (m *Analyzer) FormatReportPlot(report analyze.Report, w io.Writer) error {
	page := plotpage.NewPage(
		"Maintainability Index",
		"Per-file 0-100 maintainability scores from volume, complexity, and line counts",
	)

	page.Add(plotpage.Section{
		Title:    "Least Maintainable Files",
		Subtitle: "Files ranked by Maintainability Index, worst first.",
		Chart:    miBarChart(report),
		Hint: plotpage.Hint{
			Title: "How to interpret:",
			Items: []string{
				"<strong>Rank A (&gt; 19)</strong> = maintainable as-is",
				"<strong>Rank B (10-19)</strong> = watch for growing complexity",
				"<strong>Rank C (&le; 9)</strong> = refactoring candidate",
			},
		},
	})

	return page.Render(w)
}

func miBarChart(report analyze.Report) *charts.Bar {
	files := fileRows(report)
	if len(files) == 0 {
		return emptyBarChart("Maintainability Index")
	}

	if len(files) > topFilesLimit {
		files = files[:topFilesLimit]
	}

	co := plotpage.DefaultChartOpts()
	palette := plotpage.GetChartPalette(plotpage.ThemeDark)

	labels := make([]string, len(files))
	data := make([]opts.BarData, len(files))

	for i, file := range files {
		mi := reportutil.MapFloat64(file, "mi")
		labels[i] = reportutil.MapString(file, "file")
		data[i] = opts.BarData{
			Value:     mi,
			ItemStyle: &opts.ItemStyle{Color: colorForRank(RankOf(mi), palette)},
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(co.Init("100%", "500px")),
		charts.WithTooltipOpts(co.Tooltip("axis")),
		charts.WithDataZoomOpts(co.DataZoom()...),
		charts.WithGridOpts(co.Grid()),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Rotate:   xAxisRotate,
				Interval: "0",
				Color:    co.TextMutedColor(),
			},
			AxisLine: &opts.AxisLine{LineStyle: &opts.LineStyle{Color: co.AxisColor()}},
		}),
		charts.WithYAxisOpts(co.YAxis("Index")),
	)

	bar.SetXAxis(labels)
	bar.AddSeries("Index", data)

	return bar
}

// fileRows returns the aggregated file list worst first, regardless of the
// configured listing order. A per-file report has no file list and yields a
// single synthetic row.
func fileRows(report analyze.Report) []map[string]any {
	files := reportutil.GetBlocks(report, "files")
	if len(files) > 0 {
		rows := make([]map[string]any, len(files))
		copy(rows, files)
		sort.SliceStable(rows, func(i, j int) bool {
			return reportutil.MapFloat64(rows[i], "mi") < reportutil.MapFloat64(rows[j], "mi")
		})

		return rows
	}

	if _, ok := report["mi"]; !ok {
		return nil
	}

	return []map[string]any{{
		"file": reportutil.GetString(report, "file"),
		"mi":   reportutil.GetFloat64(report, "mi"),
	}}
}

func colorForRank(rank string, palette plotpage.ChartPalette) string {
	switch rank {
	case "A":
		return palette.Semantic.Good
	case "B":
		return palette.Semantic.Warning
	default:
		return palette.Semantic.Bad
	}
}

func emptyBarChart(title string) *charts.Bar {
	co := plotpage.DefaultChartOpts()
	bar := charts.NewBar()

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(co.Init("100%", emptyChartHeight)),
		charts.WithTitleOpts(co.Title(title, "No data")),
	)

	return bar
}
