package web

import (
	"io/fs"
	"net/http"
)

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("GET /healthz", s.health)

	mux.HandleFunc("GET /settings", s.settingsPage)
	mux.HandleFunc("POST /settings", s.updateSettings)

	mux.HandleFunc("GET /entry", s.entryPage)
	mux.HandleFunc("POST /entry", s.createEntry)

	mux.HandleFunc("GET /history", s.history)
	mux.HandleFunc("POST /toggle_paid/{id}", s.togglePaid)
	mux.HandleFunc("POST /delete_entry/{id}", s.deleteEntry)
	mux.HandleFunc("POST /pay_all", s.payAll)

	mux.HandleFunc("GET /export_pdf", s.exportPDF)
	mux.HandleFunc("GET /backup", s.backup)
	mux.HandleFunc("POST /restore", s.restore)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	return mux
}
