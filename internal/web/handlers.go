package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"shiftpay/internal/domain"
	"shiftpay/internal/errors"
	"shiftpay/internal/export"
	"shiftpay/internal/services"
)

const maxRestoreBytes = 10 << 20

// entryForm holds the values shown in the time entry form
type entryForm struct {
	Date      string
	StartTime string
	EndTime   string
}

// settingsForm holds the values shown in the settings form
type settingsForm struct {
	CurrentRate string
	Setting     *domain.RateSetting
}

// historyView holds the values shown on the history page
type historyView struct {
	*services.History
	Query       services.HistoryQuery
	FilterQuery template.URL
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/entry", http.StatusFound)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) currencySymbol(r *http.Request) string {
	setting, err := s.api.GetRate(r.Context())
	if err != nil {
		return s.config.Rate.CurrencySymbol
	}
	return setting.CurrencySymbol
}

func (s *Server) settingsPage(w http.ResponseWriter, r *http.Request) {
	setting, err := s.api.GetRate(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "settings.html", pageData{
		Title:  "Settings",
		Active: "settings",
		Symbol: setting.CurrencySymbol,
		Data:   settingsForm{CurrentRate: setting.CurrentRate.StringFixed(2), Setting: setting},
	})
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	input := r.FormValue("current_rate")

	if _, err := s.api.UpdateRate(r.Context(), input); err != nil {
		if statusFor(err) != http.StatusBadRequest {
			s.fail(w, r, err)
			return
		}
		setting, getErr := s.api.GetRate(r.Context())
		if getErr != nil {
			s.fail(w, r, getErr)
			return
		}
		s.render(w, r, http.StatusBadRequest, "settings.html", pageData{
			Title:  "Settings",
			Active: "settings",
			Error:  userMessage(err),
			Symbol: setting.CurrencySymbol,
			Data:   settingsForm{CurrentRate: input, Setting: setting},
		})
		return
	}

	s.redirect(w, r, "/settings", Flash{FlashSuccess, "Settings updated successfully!"})
}

func (s *Server) entryPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "entry.html", pageData{
		Title:  "Time Entry",
		Active: "entry",
		Data: entryForm{
			Date:      s.now().Format(domain.DateLayout),
			StartTime: "09:00",
			EndTime:   "17:00",
		},
	})
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	form := entryForm{
		Date:      strings.TrimSpace(r.FormValue("date")),
		StartTime: strings.TrimSpace(r.FormValue("start_time")),
		EndTime:   strings.TrimSpace(r.FormValue("end_time")),
	}

	result, err := s.api.RecordShift(r.Context(), services.EntryRequest{
		Date:      form.Date,
		StartTime: form.StartTime,
		EndTime:   form.EndTime,
	})
	if err != nil {
		if statusFor(err) != http.StatusBadRequest {
			s.fail(w, r, err)
			return
		}
		s.render(w, r, http.StatusBadRequest, "entry.html", pageData{
			Title:  "Time Entry",
			Active: "entry",
			Error:  userMessage(err),
			Data:   form,
		})
		return
	}

	flashes := make([]Flash, 0, len(result.WarningMessages)+1)
	for _, msg := range result.WarningMessages {
		flashes = append(flashes, Flash{FlashWarning, msg})
	}
	entry := result.Entry
	flashes = append(flashes, Flash{FlashSuccess, fmt.Sprintf("Time entry #%d saved! Total: %sh, Pay: %s",
		entry.SequenceNumber, export.FormatHours(entry.TotalHours), export.FormatCurrency(s.currencySymbol(r), entry.TotalPay))})

	s.redirect(w, r, "/entry", flashes...)
}

func historyQuery(values url.Values) services.HistoryQuery {
	return services.HistoryQuery{
		ShowPaid:  values.Get("show_paid"),
		StartDate: values.Get("start_date"),
		EndDate:   values.Get("end_date"),
	}
}

// filterQuery encodes the non-empty history filters for links and redirects
func filterQuery(q services.HistoryQuery) string {
	values := url.Values{}
	if q.ShowPaid != "" {
		values.Set("show_paid", q.ShowPaid)
	}
	if q.StartDate != "" {
		values.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		values.Set("end_date", q.EndDate)
	}
	return values.Encode()
}

func historyURL(q services.HistoryQuery) string {
	if encoded := filterQuery(q); encoded != "" {
		return "/history?" + encoded
	}
	return "/history"
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	query := historyQuery(r.URL.Query())

	history, err := s.api.GetHistory(r.Context(), query)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "history.html", pageData{
		Title:  "History",
		Active: "history",
		Symbol: s.currencySymbol(r),
		Data: historyView{
			History:     history,
			Query:       query,
			FilterQuery: template.URL(filterQuery(query)),
		},
	})
}

func entryID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *Server) togglePaid(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	entry, err := s.api.TogglePaid(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.redirect(w, r, historyURL(historyQuery(r.URL.Query())),
		Flash{FlashSuccess, fmt.Sprintf("Entry #%d marked as %s.", entry.SequenceNumber, entry.PaidStatus())})
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	entry, err := s.api.DeleteEntry(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.redirect(w, r, historyURL(historyQuery(r.URL.Query())),
		Flash{FlashSuccess, fmt.Sprintf("Entry #%d deleted successfully.", entry.SequenceNumber)})
}

func (s *Server) payAll(w http.ResponseWriter, r *http.Request) {
	query := historyQuery(r.URL.Query())

	summary, err := s.api.PayAll(r.Context(), query)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if summary.Count == 0 {
		s.redirect(w, r, historyURL(query), Flash{FlashWarning, "No unpaid entries found to mark as paid."})
		return
	}

	s.redirect(w, r, historyURL(query), Flash{FlashSuccess,
		fmt.Sprintf("Marked %d entries as paid. Total: %s", summary.Count, export.FormatCurrency(s.currencySymbol(r), summary.Total))})
}

func (s *Server) exportPDF(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	filename, err := s.api.ExportUnpaidPDF(r.Context(), &buf, s.now())
	if err != nil {
		if errors.IsEmptyResult(err) {
			s.redirect(w, r, "/history", Flash{FlashWarning, errors.GetUserMessage(err)})
			return
		}
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

func (s *Server) backup(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.api.Backup(r.Context(), &buf); err != nil {
		s.fail(w, r, err)
		return
	}

	filename := "shiftpay_backup_" + s.now().Format("20060102") + ".json"
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	_, _ = buf.WriteTo(w)
}

// restore accepts the backup either as the raw request body or as the
// "backup" file of a multipart form.
func (s *Server) restore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRestoreBytes)

	var body io.Reader = r.Body
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, _, err := r.FormFile("backup")
		if err != nil {
			s.fail(w, r, errors.NewValidationError("backup file is required", err))
			return
		}
		defer file.Close()
		body = file
	}

	summary, err := s.api.Restore(r.Context(), body)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.redirect(w, r, "/history", Flash{FlashSuccess,
		fmt.Sprintf("Backup restored: %d entries, %d settings.", summary.Entries, summary.Settings)})
}
