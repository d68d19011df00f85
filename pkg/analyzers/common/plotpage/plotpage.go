// Package plotpage assembles self-contained HTML report pages from
// go-echarts chart components.
package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
)

const styleTagLen = 8 // len("</style>")

// Style defines chart dimensions and grid margins.
type Style struct {
	Width      string
	Height     string
	GridLeft   string
	GridRight  string
	GridTop    string
	GridBottom string
}

// DefaultStyle returns the default chart style.
func DefaultStyle() Style {
	return Style{
		Width:      "100%",
		Height:     "500px",
		GridLeft:   "5%",
		GridRight:  "5%",
		GridTop:    "40",
		GridBottom: "15%",
	}
}

// Hint contains interpretive guidance for a chart section.
type Hint struct {
	Title string
	Items []string
}

// Section represents a chart section within a page.
type Section struct {
	Title    string
	Subtitle string
	Hint     Hint
	Chart    Renderable
}

// Page represents a complete visualization page.
type Page struct {
	Title       string
	Description string
	ProjectName string
	Style       Style
	Theme       Theme
	Sections    []Section
}

// NewPage creates a new visualization page.
func NewPage(title, description string) *Page {
	return &Page{
		Title:       title,
		Description: description,
		ProjectName: "Codegauge",
		Style:       DefaultStyle(),
		Theme:       ThemeDark,
	}
}

// WithTheme sets the theme for the page.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return HTMLRenderer{}.Render(w, p)
}

// Renderable is the interface for chart components.
type Renderable interface {
	Render(w io.Writer) error
}

// HTMLRenderer renders pages as HTML.
type HTMLRenderer struct{}

type pageData struct {
	Title       string
	Description string
	ProjectName string
	Theme       ThemeConfig
	Sections    []sectionData
}

type sectionData struct {
	Title    string
	Subtitle string
	Chart    template.HTML
	Hint     *hintData
}

type hintData struct {
	Title string
	Items []template.HTML
}

// Render writes the page as HTML to the writer.
func (r HTMLRenderer) Render(w io.Writer, page *Page) error {
	data := pageData{
		Title:       page.Title,
		Description: page.Description,
		ProjectName: page.ProjectName,
		Theme:       GetThemeConfig(page.Theme),
		Sections:    make([]sectionData, 0, len(page.Sections)),
	}

	for _, section := range page.Sections {
		data.Sections = append(data.Sections, toSectionData(section))
	}

	var buf bytes.Buffer

	err := pageTemplate.Execute(&buf, data)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = w.Write(buf.Bytes())
	if err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	return nil
}

func toSectionData(section Section) sectionData {
	data := sectionData{
		Title:    section.Title,
		Subtitle: section.Subtitle,
		Chart:    template.HTML(renderChart(section.Chart)), //nolint:gosec // chart HTML comes from go-echarts
	}

	if len(section.Hint.Items) > 0 {
		items := make([]template.HTML, len(section.Hint.Items))
		for i, item := range section.Hint.Items {
			items[i] = template.HTML(item) //nolint:gosec // hints are compiled-in strings
		}

		data.Hint = &hintData{Title: section.Hint.Title, Items: items}
	}

	return data
}

func renderChart(chart Renderable) string {
	if chart == nil {
		return ""
	}

	var buf bytes.Buffer

	err := chart.Render(&buf)
	if err != nil {
		return ""
	}

	return extractChartContent(buf.String())
}

// extractChartContent pulls the chart div and script out of the full HTML
// page go-echarts emits so it can be embedded in our own page shell.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			break
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			break
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}

	return content
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - {{.ProjectName}}</title>
<style>
body { margin: 0; font-family: ui-sans-serif, system-ui, sans-serif;
  background: {{.Theme.Background}}; color: {{.Theme.TextPrimary}}; }
header { padding: 24px 32px; border-bottom: 1px solid {{.Theme.Border}}; }
header h1 { margin: 0 0 4px; font-size: 22px; }
header p { margin: 0; color: {{.Theme.TextMuted}}; }
main { max-width: 1100px; margin: 0 auto; padding: 16px; }
section.panel { background: {{.Theme.Surface}}; border: 1px solid {{.Theme.Border}};
  border-radius: 8px; margin: 24px 0; padding: 20px; }
section.panel h2 { margin: 0 0 4px; font-size: 18px; }
section.panel p.subtitle { margin: 0 0 16px; color: {{.Theme.TextMuted}}; font-size: 14px; }
.echart-box { margin: 0; }
.hint { border-left: 3px solid {{.Theme.Accent}}; background: {{.Theme.SurfaceHover}};
  padding: 12px 16px; margin-top: 16px; font-size: 13px; }
.hint strong { color: {{.Theme.TextSecondary}}; }
.hint ul { margin: 8px 0 0; padding-left: 18px; }
</style>
</head>
<body>
<header>
<h1>{{.ProjectName}}: {{.Title}}</h1>
<p>{{.Description}}</p>
</header>
<main>
{{range .Sections}}
<section class="panel">
<h2>{{.Title}}</h2>
<p class="subtitle">{{.Subtitle}}</p>
{{.Chart}}
{{with .Hint}}
<div class="hint">
<strong>{{.Title}}</strong>
<ul>
{{range .Items}}<li>{{.}}</li>
{{end}}</ul>
</div>
{{end}}
</section>
{{end}}
</main>
</body>
</html>
`))
