package rawmetrics

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/plotpage"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

const pieRadius = "60%"

// FormatReportPlot generates an HTML plot visualization for raw metrics.
func (r *Analyzer) FormatReportPlot(report analyze.Report, w io.Writer) error {
	page := plotpage.NewPage(
		"Raw Metrics",
		"Physical line partition and logical line counts",
	)

	page.Add(plotpage.Section{
		Title:    "Line Partition",
		Subtitle: "Every physical line classified exactly once.",
		Chart:    linePartitionPie(report),
		Hint: plotpage.Hint{
			Title: "How to interpret:",
			Items: []string{
				"<strong>Code</strong> lines carry at least one executable token",
				"<strong>Docstrings</strong> are standalone string statements",
				"<strong>Comments</strong> are lines holding only a comment",
			},
		},
	})

	return page.Render(w)
}

func linePartitionPie(report analyze.Report) *charts.Pie {
	co := plotpage.DefaultChartOpts()
	pie := charts.NewPie()

	total := reportutil.GetInt(report, "loc")
	if total == 0 {
		pie.SetGlobalOptions(
			charts.WithInitializationOpts(co.Init("600px", "400px")),
			charts.WithTitleOpts(co.Title("Line Partition", "No data")),
		)

		return pie
	}

	palette := plotpage.GetChartPalette(plotpage.ThemeDark)

	pie.SetGlobalOptions(
		charts.WithTooltipOpts(co.Tooltip("item")),
		charts.WithInitializationOpts(co.Init("600px", "400px")),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Top:       "bottom",
			TextStyle: &opts.TextStyle{Color: co.TextMutedColor()},
		}),
	)

	entries := []struct {
		name  string
		key   string
		color string
	}{
		{"Code", "sloc", palette.Semantic.Good},
		{"Docstrings", "multi", palette.Semantic.Warning},
		{"Comments", "single_comments", palette.Semantic.Warning},
		{"Blank", "blank", palette.Semantic.Bad},
	}

	pieData := make([]opts.PieData, 0, len(entries))

	for _, entry := range entries {
		count := reportutil.GetInt(report, entry.key)
		if count == 0 {
			continue
		}

		pieData = append(pieData, opts.PieData{
			Name:      entry.name,
			Value:     count,
			ItemStyle: &opts.ItemStyle{Color: entry.color},
		})
	}

	pie.AddSeries("Lines", pieData).
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
