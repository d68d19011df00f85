package complexity

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
	topBlocksLimit   = 20
	xAxisRotate      = 45
	emptyChartHeight = "400px"
	pieRadius        = "60%"
)

// FormatReportPlot generates an HTML plot visualization for complexity analysis.
func (c *Analyzer) FormatReportPlot(report analyze.Report, w io.Writer) error {
	page := plotpage.NewPage(
		"Cyclomatic Complexity",
		"Per-block decision point counts and rank distribution",
	)

	page.Add(
		plotpage.Section{
			Title:    "Most Complex Blocks",
			Subtitle: "Blocks ranked by cyclomatic complexity (higher = more branching).",
			Chart:    complexityBarChart(report),
			Hint: plotpage.Hint{
				Title: "How to interpret:",
				Items: []string{
					"<strong>A (1-5)</strong> = simple, easy to test",
					"<strong>B-C (6-20)</strong> = moderate, consider simplifying",
					"<strong>D-F (21+)</strong> = high, should be refactored",
				},
			},
		},
		plotpage.Section{
			Title:    "Rank Distribution",
			Subtitle: "Share of blocks per complexity rank.",
			Chart:    rankPieChart(report),
			Hint: plotpage.Hint{
				Title: "How to interpret:",
				Items: []string{
					"<strong>Goal:</strong> maximize A blocks, eliminate D-F",
				},
			},
		},
	)

	return page.Render(w)
}

func complexityBarChart(report analyze.Report) *charts.Bar {
	blocks := reportutil.GetBlocks(report, "blocks")
	if len(blocks) == 0 {
		return emptyBarChart("Block Complexity")
	}

	sorted := make([]map[string]any, len(blocks))
	copy(sorted, blocks)

	sort.SliceStable(sorted, func(i, j int) bool {
		return reportutil.MapInt(sorted[i], "complexity") > reportutil.MapInt(sorted[j], "complexity")
	})

	if len(sorted) > topBlocksLimit {
		sorted = sorted[:topBlocksLimit]
	}

	co := plotpage.DefaultChartOpts()
	palette := plotpage.GetChartPalette(plotpage.ThemeDark)

	labels := make([]string, len(sorted))
	data := make([]opts.BarData, len(sorted))

	for i, block := range sorted {
		labels[i] = reportutil.MapString(block, "full_name")
		data[i] = opts.BarData{
			Value:     reportutil.MapInt(block, "complexity"),
			ItemStyle: &opts.ItemStyle{Color: colorForRank(reportutil.MapString(block, "rank"), palette)},
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
		charts.WithYAxisOpts(co.YAxis("Complexity")),
	)

	bar.SetXAxis(labels)
	bar.AddSeries("Complexity", data)

	return bar
}

func colorForRank(rank string, palette plotpage.ChartPalette) string {
	switch rank {
	case "A":
		return palette.Semantic.Good
	case "B", "C":
		return palette.Semantic.Warning
	default:
		return palette.Semantic.Bad
	}
}

func rankPieChart(report analyze.Report) *charts.Pie {
	blocks := reportutil.GetBlocks(report, "blocks")

	co := plotpage.DefaultChartOpts()
	pie := charts.NewPie()

	if len(blocks) == 0 {
		pie.SetGlobalOptions(
			charts.WithInitializationOpts(co.Init("600px", emptyChartHeight)),
			charts.WithTitleOpts(co.Title("Rank Distribution", "No data")),
		)

		return pie
	}

	palette := plotpage.GetChartPalette(plotpage.ThemeDark)

	counts := make(map[string]int)
	for _, block := range blocks {
		counts[reportutil.MapString(block, "rank")]++
	}

	pie.SetGlobalOptions(
		charts.WithTooltipOpts(co.Tooltip("item")),
		charts.WithInitializationOpts(co.Init("600px", "400px")),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Top:       "bottom",
			TextStyle: &opts.TextStyle{Color: co.TextMutedColor()},
		}),
	)

	pieData := make([]opts.PieData, 0, len(counts))

	for _, rank := range []string{"A", "B", "C", "D", "E", "F"} {
		count, ok := counts[rank]
		if !ok {
			continue
		}

		pieData = append(pieData, opts.PieData{
			Name:      rank,
			Value:     count,
			ItemStyle: &opts.ItemStyle{Color: colorForRank(rank, palette)},
		})
	}

	pie.AddSeries("Rank", pieData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c} ({d}%)",
				Color:     co.TextMutedColor(),
			}),
			charts.WithPieChartOpts(opts.PieChart{Radius: pieRadius}),
		)

	return pie
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
