package landing

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/yuanzicheng/dev-tools/internal/i18n"
	"github.com/yuanzicheng/dev-tools/internal/templates"
	"github.com/yuanzicheng/dev-tools/pkg/transform"
	"golang.org/x/text/language"
)

type tool struct {
	Name         string
	Title        string
	Capabilities transform.Capabilities
}

type indexPage struct {
	Lang      string
	Title     string
	Tools     []tool
	Languages []language.Tag
}

// SetupRoutes initializes routes for the landing page, which links to
// each utility page. Templates must be set up beforehand.
func SetupRoutes(r *mux.Router, cat *i18n.Catalog) {
	h := landingHandler{cat: cat}
	r.Path("/").HandlerFunc(h.Index).Methods(http.MethodGet)
}

type landingHandler struct {
	cat *i18n.Catalog
}

func (h landingHandler) Index(w http.ResponseWriter, r *http.Request) {
	tag := h.cat.Match(r.Header.Get("Accept-Language"), r.URL.Query().Get("lang"))

	page := indexPage{
		Lang:      tag.String(),
		Title:     h.cat.Lookup(tag, i18n.AppTitle),
		Languages: h.cat.Languages(),
	}
	for _, e := range transform.Engines() {
		page.Tools = append(page.Tools, tool{
			Name:         e.Name(),
			Title:        h.cat.Lookup(tag, i18n.Menu(e.Name())),
			Capabilities: e.Capabilities(),
		})
	}

	var buf bytes.Buffer
	if err := templates.All.ExecuteTemplate(&buf, "index", page); err != nil {
		log.Printf("Error rendering landing page: %v\n", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", page.Lang)
	w.Write(buf.Bytes())
}
