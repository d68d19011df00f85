package halstead

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
	topFunctionsLimit = 20
	xAxisRotate       = 45
	emptyChartHeight  = "400px"
)

// FormatReportPlot generates an HTML plot visualization for Halstead analysis.
func (h *Analyzer) FormatReportPlot(report analyze.Report, w io.Writer) error {
	page := plotpage.NewPage(
		"Halstead Metrics",
		"Operator/operand derived size and effort measures per function",
	)

	page.Add(
		plotpage.Section{
			Title:    "Highest Effort Functions",
			Subtitle: "Functions ranked by Halstead effort (difficulty x volume).",
			Chart:    effortBarChart(report),
			Hint: plotpage.Hint{
				Title: "How to interpret:",
				Items: []string{
					"<strong>Effort &le; 1000</strong> = quick to understand",
					"<strong>Effort 1000-10000</strong> = moderate mental load",
					"<strong>Effort &gt; 50000</strong> = refactoring candidate",
				},
			},
		},
		plotpage.Section{
			Title:    "Volume vs Difficulty",
			Subtitle: "Each point is one function; far top-right means large and hard.",
			Chart:    volumeScatterChart(report),
			Hint: plotpage.Hint{
				Title: "How to interpret:",
				Items: []string{
					"<strong>Goal:</strong> keep functions in the lower-left region",
				},
			},
		},
	)

	return page.Render(w)
}

func effortBarChart(report analyze.Report) *charts.Bar {
	functions := reportutil.GetBlocks(report, "functions")
	if len(functions) == 0 {
		return emptyBarChart("Function Effort")
	}

	sorted := make([]map[string]any, len(functions))
	copy(sorted, functions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return reportutil.MapFloat64(sorted[i], "effort") > reportutil.MapFloat64(sorted[j], "effort")
	})

	if len(sorted) > topFunctionsLimit {
		sorted = sorted[:topFunctionsLimit]
	}

	co := plotpage.DefaultChartOpts()
	palette := plotpage.GetChartPalette(plotpage.ThemeDark)

	labels := make([]string, len(sorted))
	data := make([]opts.BarData, len(sorted))

	for i, fn := range sorted {
		effort := reportutil.MapFloat64(fn, "effort")
		labels[i] = reportutil.MapString(fn, "name")
		data[i] = opts.BarData{
			Value:     effort,
			ItemStyle: &opts.ItemStyle{Color: colorForEffort(effort, palette)},
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
		charts.WithYAxisOpts(co.YAxis("Effort")),
	)

	bar.SetXAxis(labels)
	bar.AddSeries("Effort", data)

	return bar
}

func colorForEffort(effort float64, palette plotpage.ChartPalette) string {
	switch {
	case effort <= effortMediumMax:
		return palette.Semantic.Good
	case effort <= effortHighMax:
		return palette.Semantic.Warning
	default:
		return palette.Semantic.Bad
	}
}

func volumeScatterChart(report analyze.Report) *charts.Scatter {
	functions := reportutil.GetBlocks(report, "functions")

	co := plotpage.DefaultChartOpts()
	scatter := charts.NewScatter()

	if len(functions) == 0 {
		scatter.SetGlobalOptions(
			charts.WithInitializationOpts(co.Init("600px", emptyChartHeight)),
			charts.WithTitleOpts(co.Title("Volume vs Difficulty", "No data")),
		)

		return scatter
	}

	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(co.Init("100%", "500px")),
		charts.WithTooltipOpts(co.Tooltip("item")),
		charts.WithGridOpts(co.Grid()),
		charts.WithXAxisOpts(co.XAxis("Volume")),
		charts.WithYAxisOpts(co.YAxis("Difficulty")),
	)

	data := make([]opts.ScatterData, 0, len(functions))
	for _, fn := range functions {
		data = append(data, opts.ScatterData{
			Name: reportutil.MapString(fn, "name"),
			Value: []any{
				reportutil.MapFloat64(fn, "volume"),
				reportutil.MapFloat64(fn, "difficulty"),
			},
		})
	}

	scatter.AddSeries("Functions", data)

	return scatter
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
