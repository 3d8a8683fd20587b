package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"reportkit/internal/chart"
	"reportkit/internal/citation"
	"reportkit/internal/report"
	"reportkit/internal/research"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// Server renders a parsed research conversation in the browser: the
// section navigator, executive summary and key findings panels, section
// cards, chart data, and extracted sources.
type Server struct {
	messages  []research.Message
	doc       *report.Document
	series    *chart.Series
	sources   []citation.Source
	addendums []research.Addendum
	pages     map[string]*template.Template
	mux       *http.ServeMux
}

// New creates a Server for a conversation. The document model is built
// once up front; the conversation does not change while serving.
func New(messages []research.Message, rules []citation.Rule) (*Server, error) {
	main, addendums := research.Organize(messages)
	doc, err := research.ParseReport(main)
	if err != nil {
		return nil, err
	}

	var series *chart.Series
	if main.Metadata != nil && main.Metadata.GraphData.HasData() {
		s := chart.Adapt(*main.Metadata.GraphData, chart.DefaultTopN)
		series = &s
	}

	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"join":     joinLines,
	}

	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// Each page gets a clone of the base so it can own its own
	// {{define "content"}} and {{define "title"}}.
	pageNames := []string{"report.html", "sources.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		if _, err := clone.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{
		messages:  messages,
		doc:       doc,
		series:    series,
		sources:   citation.ExtractSources(messages, rules),
		addendums: addendums,
		pages:     pages,
		mux:       http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	s.mux.HandleFunc("/", s.handleReport)
	s.mux.HandleFunc("/sources", s.handleSources)
	s.mux.HandleFunc("/document.json", s.handleDocumentJSON)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.render(w, "report.html", map[string]any{
		"Doc":       s.doc,
		"Series":    s.series,
		"Sources":   s.sources,
		"Addendums": s.addendums,
		"TotalMin":  s.doc.TotalReadingTime(),
		"Topics":    research.Topics(s.messages, 5),
		"Stats":     research.Summarize(s.messages),
	})
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	s.render(w, "sources.html", map[string]any{
		"Sources": s.sources,
	})
}

func (s *Server) handleDocumentJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(s.doc); err != nil {
		log.Printf("Error encoding document: %v", err)
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// Serve starts the HTTP server for a conversation on the given port.
func Serve(messages []research.Message, rules []citation.Rule, port int) error {
	srv, err := New(messages, rules)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
