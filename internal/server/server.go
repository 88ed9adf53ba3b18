package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/elpatron68/tasklist-web/internal/config"
	"github.com/elpatron68/tasklist-web/internal/controller"
	applog "github.com/elpatron68/tasklist-web/internal/log"
	"github.com/elpatron68/tasklist-web/internal/ui"
)

type Server struct {
	mux       *http.ServeMux
	layoutTpl *template.Template
	cfg       *config.Config
	ctrl      *controller.Controller
	reqLog    *ui.RequestLogStore
	uiCfg     config.UIConfig
}

const faviconSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
  <rect rx="12" width="64" height="64" fill="#0d6efd"/>
  <path d="M26 44L14 32l4-4 8 8 20-20 4 4-24 24z" fill="#fff"/>
 </svg>`

func NewServer(ctrl *controller.Controller, reqLog *ui.RequestLogStore) *Server {
	return NewServerWithConfig(ctrl, reqLog, config.Default())
}

func NewServerWithConfig(ctrl *controller.Controller, reqLog *ui.RequestLogStore, cfg *config.Config) *Server {
	if reqLog == nil {
		reqLog = ui.NewRequestLogStore(cfg.UI.RequestLogMax)
	}
	s := &Server{cfg: cfg, ctrl: ctrl, reqLog: reqLog, uiCfg: cfg.UI}
	s.mux = http.NewServeMux()

	baseTpl := template.New("layout").Funcs(template.FuncMap{
		"taskName": s.taskNameHTML,
	})
	s.layoutTpl = template.Must(baseTpl.Parse(layoutHTML))

	s.routes()
	return s
}

func (s *Server) routes() {
	// Favicon
	s.mux.HandleFunc("/favicon.svg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
		_, _ = w.Write([]byte(faviconSVG))
	})
	s.mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/favicon.svg", http.StatusMovedPermanently)
	})
	s.mux.HandleFunc("/static/app.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(appCSS))
	})
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	// Diagnose: letzte Requests an den Task-Store
	s.mux.HandleFunc("/__requests", func(w http.ResponseWriter, r *http.Request) {
		n, _ := strconv.Atoi(r.URL.Query().Get("n"))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, e := range s.reqLog.List(n) {
			fmt.Fprintln(w, e.String())
		}
	})

	// Page load: fetch, render
	s.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.ctrl.Refresh(detached(r))
		s.renderPage(w, r)
	})

	// Task erstellen (POST); the response is the refreshed page itself
	s.mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		s.ctrl.SubmitTask(detached(r), r.PostFormValue("name"))
		s.renderPage(w, r)
	})

	// Task löschen: /tasks/{id}/delete
	s.mux.HandleFunc("/tasks/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 3 || parts[0] != "tasks" || parts[2] != "delete" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := parseTaskID(parts[1])
		if !ok {
			http.Error(w, "invalid task id", http.StatusBadRequest)
			return
		}
		s.ctrl.DeleteTask(detached(r), id)
		s.renderPage(w, r)
	})
}

// detached keeps request values but drops cancellation: once issued, a store
// request runs to completion even if the browser goes away.
func detached(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (s *Server) Handler() http.Handler {
	return withSecurityHeaders(withAccessLog(s.mux))
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self'; base-uri 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.status == 0 {
		sw.status = code
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	return sw.ResponseWriter.Write(b)
}

func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		if sw.status == 0 {
			sw.status = http.StatusOK
		}
		applog.Debugf("%s %s -> %d", r.Method, r.URL.Path, sw.status)
	})
}
