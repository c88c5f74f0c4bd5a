package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/domain"
	"shiftpay/internal/export"
	"shiftpay/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = []string{"entry.html", "settings.html", "history.html", "error.html"}

func (s *Server) parseTemplates() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"currency": export.FormatCurrency,
		"hours":    export.FormatHours,
		"date": func(t time.Time) string {
			return t.Format(s.config.Display.DateFormat)
		},
		"clock": func(t domain.TimeOfDay) string {
			return t.Format(s.config.Display.TimeFormat)
		},
		"fixed": func(d decimal.Decimal) string {
			return d.StringFixed(2)
		},
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, err
		}
		templates[page] = t
	}
	return templates, nil
}

// pageData is what every template receives
type pageData struct {
	Title   string
	Active  string
	Flashes []Flash
	Error   string
	Symbol  string
	Data    interface{}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	t, ok := s.templates[page]
	if !ok {
		http.Error(w, "template not found: "+page, http.StatusInternalServerError)
		return
	}

	data.Flashes = append(popFlashes(w, r), data.Flashes...)
	if data.Symbol == "" {
		data.Symbol = s.config.Rate.CurrencySymbol
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, page, data); err != nil {
		logging.Errorf("render %s request_id=%s: %v", page, RequestID(r.Context()), err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
