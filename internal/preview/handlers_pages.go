package preview

import (
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dgallion1/apidocs/internal/render"
	"github.com/go-chi/chi/v5"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<nav>
<ul>
{{range .TOC}}<li><a href="#{{.ID}}">{{.Name}}</a></li>
{{end}}</ul>
</nav>
<main>
{{.Body}}
</main>
</body>
</html>
`))

// handleListPages lists the package ids with an emitted page.
func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	ids, err := ListPages(s.dir)
	if err != nil {
		jsonError(w, "failed to list pages: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"packages": ids})
}

// handlePage renders a package reference page as HTML.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, ok := s.loadPage(w, chi.URLParam(r, "pkgID"))
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTmpl.Execute(w, map[string]any{
		"Title": page.Title,
		"TOC":   page.TOC,
		"Body":  template.HTML(page.HTML),
	})
	if err != nil {
		s.log.Error("render page failed", "package", page.ID, "error", err)
	}
}

// handleTOC returns the member headings of a page.
func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	page, ok := s.loadPage(w, chi.URLParam(r, "pkgID"))
	if !ok {
		return
	}
	writeJSON(w, page.TOC)
}

// handleAPIJSON serves the emitted api.json of a package.
func (s *Server) handleAPIJSON(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "pkgID")
	if !validID(id) {
		jsonError(w, "unknown package", http.StatusNotFound)
		return
	}
	b, err := os.ReadFile(filepath.Join(s.dir, id, render.JSONFile))
	if errors.Is(err, fs.ErrNotExist) {
		jsonError(w, "unknown package", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to read api.json: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

func (s *Server) loadPage(w http.ResponseWriter, id string) (*Page, bool) {
	page, err := LoadPage(s.dir, id)
	if errors.Is(err, ErrNoPage) {
		jsonError(w, "unknown package", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		s.log.Error("load page failed", "package", id, "error", err)
		jsonError(w, "failed to load page: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return page, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
