package templates

import (
	"bytes"
	"html/template"

	"flightdeals-service/internal/domain/entity"
	"flightdeals-service/internal/usecase"
)

const weekendReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Weekend flight deals</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
h2 { border-bottom: 1px solid #ccc; padding-bottom: 4px; }
h3 { color: #555; margin-bottom: 4px; }
table { border-collapse: collapse; margin-bottom: 16px; }
td, th { border: 1px solid #ddd; padding: 4px 8px; text-align: left; }
.price { font-weight: bold; }
</style>
</head>
<body>
<h1>Weekend flight deals</h1>
<p>Generated at {{.GeneratedAt.Format "2006-01-02 15:04"}}</p>
{{if not .Destinations}}<p>No deals found.</p>{{end}}
{{range .Destinations}}
<h2>{{.DestinationName}} ({{.IATA}}) — from {{.LowestPrice}}</h2>
{{range .Weeks}}
<h3>Week {{.Week}}</h3>
<table>
<tr><th>Total</th><th>Out</th><th>Back</th><th>Days</th></tr>
{{range .Trips}}
<tr>
<td class="price">{{.TotalPrice}}</td>
<td>{{.StartDate}} {{.StartName}} [{{.StartCode}}] {{.StartTime}}</td>
<td>{{.BackDate}} {{.BackName}} [{{.BackCode}}] {{.BackTime}}</td>
<td>{{.Duration}}</td>
</tr>
{{end}}
</table>
{{end}}
{{end}}
</body>
</html>
`

const durationReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Flight deals</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
h2 { border-bottom: 1px solid #ccc; padding-bottom: 4px; }
table { border-collapse: collapse; margin-bottom: 16px; }
td, th { border: 1px solid #ddd; padding: 4px 8px; text-align: left; }
.price { font-weight: bold; }
</style>
</head>
<body>
<h1>Flight deals</h1>
<p>Generated at {{.GeneratedAt.Format "2006-01-02 15:04"}}</p>
{{if not .Destinations}}<p>No deals found.</p>{{end}}
{{range .Destinations}}
<h2>{{.DestinationName}} ({{.IATA}}) — from {{.LowestPrice}}</h2>
<table>
<tr><th>Total</th><th>Out</th><th>Back</th><th>Days</th></tr>
{{range .Trips}}
<tr>
<td class="price">{{.TotalPrice}}</td>
<td>{{.StartDate}} {{.StartName}} [{{.StartCode}}] {{.StartTime}}</td>
<td>{{.BackDate}} {{.BackName}} [{{.BackCode}}] {{.BackTime}}</td>
<td>{{.Duration}}</td>
</tr>
{{end}}
</table>
{{end}}
</body>
</html>
`

// HTMLRenderer renders report view models into the delivered HTML document.
type HTMLRenderer struct {
	weekend  *template.Template
	duration *template.Template
}

// NewHTMLRenderer parses the report templates once.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	weekend, err := template.New("weekend_deals").Parse(weekendReportTemplate)
	if err != nil {
		return nil, err
	}
	duration, err := template.New("duration_deals").Parse(durationReportTemplate)
	if err != nil {
		return nil, err
	}
	return &HTMLRenderer{
		weekend:  weekend,
		duration: duration,
	}, nil
}

// Render picks the template matching the view's mode.
func (r *HTMLRenderer) Render(view usecase.ReportView) (string, error) {
	tpl := r.duration
	if view.Mode == entity.ModeWeekend {
		tpl = r.weekend
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
