package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const reportTemplateSource = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Summary.ModelName}} run report</title>
</head>
<body>
<h1>{{.Summary.ModelName | title}}</h1>
<p>{{.Summary.NumJoints}} joints, {{.Summary.Steps}} steps, t_end = {{formatFloat .Summary.TEnd 3}}s</p>

<h2>Testable properties</h2>
<ul>
{{range .Properties}}
<li>{{.Name}}: {{if .Passed}}PASS{{else}}FAIL{{end}} ({{.Detail}})</li>
{{end}}
</ul>

<h2>Plots</h2>
{{range .Plots}}
<h3>{{.Title}}</h3>
<img src="{{.FileName}}" alt="{{.Title}}">
{{end}}
</body>
</html>
`

var reportFuncs = template.FuncMap{
	"formatFloat": func(value float64, precision int) string {
		return fmt.Sprintf(fmt.Sprintf("%%.%df", precision), value)
	},
	"title": func(input string) string {
		return cases.Title(language.English).String(input)
	},
}

var reportTemplate = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplateSource))

// RenderHTML writes data as an HTML report to w.
func RenderHTML(w io.Writer, data *ReportData) error {
	return reportTemplate.Execute(w, data)
}

// WriteHTMLFile renders data to an HTML file named "report.html" under dir.
func WriteHTMLFile(dir string, data *ReportData) (string, error) {
	path := filepath.Join(dir, "report.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report: failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := RenderHTML(f, data); err != nil {
		return "", fmt.Errorf("report: failed to render %s: %w", path, err)
	}
	return path, nil
}
