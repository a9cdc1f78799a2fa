package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/lueurxax/coverage-dashboard/internal/core/domain"
	"github.com/lueurxax/coverage-dashboard/internal/filters"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template function helpers.
var templateFuncs = template.FuncMap{
	"networks": func() []string {
		out := make([]string, 0, len(domain.CoverageColumns()))
		for _, c := range domain.CoverageColumns() {
			out = append(out, domain.NetworkLabel(c))
		}

		return out
	},
}

// Renderer handles HTML template rendering.
type Renderer struct {
	pageTmpl  *template.Template
	errorTmpl *template.Template
}

// NewRenderer creates a new template renderer.
func NewRenderer() (*Renderer, error) {
	pageTmpl, err := template.New("dashboard.html").
		Funcs(templateFuncs).
		ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}

	errorTmpl, err := template.New("error.html").
		ParseFS(templateFS, "templates/error.html")
	if err != nil {
		return nil, fmt.Errorf("parse error template: %w", err)
	}

	return &Renderer{
		pageTmpl:  pageTmpl,
		errorTmpl: errorTmpl,
	}, nil
}

// PageData contains all data for rendering the dashboard page.
type PageData struct {
	View        *ViewModel
	Filters     []FilterView
	PageLinks   []PageLink
	MapOptions  []OptionView
	Charts      []ChartView
	ExportURL   string
	APIURL      string
	RenderID    string
	GeneratedAt time.Time
}

// FilterView is one multi-select of the sidebar.
type FilterView struct {
	Param   string
	Label   string
	Options []OptionView
}

// OptionView is one choice of a select.
type OptionView struct {
	Value    string
	Selected bool
}

// PageLink points at one page with the current filters kept.
type PageLink struct {
	Title  string
	URL    string
	Active bool
}

// ChartView is one chart image of the page.
type ChartView struct {
	Name string
	URL  string
}

// ErrorData contains data for rendering error pages.
type ErrorData struct {
	Code    int
	Title   string
	Message string
}

// NewPageData derives the template data of vm.
func NewPageData(vm *ViewModel, renderID string) *PageData {
	data := &PageData{View: vm, RenderID: renderID, GeneratedAt: time.Now().UTC()}

	for _, f := range filters.Fields() {
		selected := make(map[string]bool)
		for _, v := range vm.Selection.Filters.Values(f.Column) {
			selected[v] = true
		}

		fv := FilterView{Param: f.Param, Label: f.Label}
		for _, o := range vm.Options[f.Column] {
			fv.Options = append(fv.Options, OptionView{Value: o, Selected: selected[o]})
		}

		data.Filters = append(data.Filters, fv)
	}

	for _, p := range vm.Pages {
		sel := vm.Selection
		sel.Page = p
		data.PageLinks = append(data.PageLinks, PageLink{
			Title:  p.Title(),
			URL:    "/?" + sel.Query().Encode(),
			Active: p == vm.Selection.Page,
		})
	}

	for _, v := range domain.MapVariables() {
		data.MapOptions = append(data.MapOptions, OptionView{Value: string(v), Selected: v == vm.Selection.MapVariable})
	}

	query := vm.Selection.Query().Encode()
	data.ExportURL = "/export.xlsx?" + query
	data.APIURL = "/api/view?" + query

	for _, name := range vm.ChartNames() {
		data.Charts = append(data.Charts, ChartView{Name: name, URL: "/charts/" + name + ".png?" + query})
	}

	return data
}

// RenderPage renders the dashboard page.
func (r *Renderer) RenderPage(w io.Writer, data *PageData) error {
	if err := r.pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute dashboard template: %w", err)
	}

	return nil
}

// RenderError renders an error page.
func (r *Renderer) RenderError(w io.Writer, data *ErrorData) error {
	if err := r.errorTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute error template: %w", err)
	}

	return nil
}
