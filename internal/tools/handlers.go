package tools

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/yuanzicheng/dev-tools/internal/config"
	"github.com/yuanzicheng/dev-tools/internal/i18n"
	"github.com/yuanzicheng/dev-tools/internal/session"
	"github.com/yuanzicheng/dev-tools/pkg/util/cors"
)

// SetupRoutes configures the transform and view API endpoints.
func SetupRoutes(r *mux.Router, stateDB session.StateDB, cat *i18n.Catalog) {
	s := r.PathPrefix("/api").Subrouter()
	s.Use(mux.CORSMethodMiddleware(s))
	s.Use(cors.Middleware(config.Current.CORS.AllowOrigin))

	maxBytes := int64(config.Current.Upload.MaxBytes)

	t := transformHandler{cat: cat, maxBytes: maxBytes}
	s.HandleFunc("/tools", t.ListTools).Methods(http.MethodOptions, http.MethodGet)
	s.HandleFunc("/tools/{tool}/{op:encode|decode}", t.Transform).Methods(http.MethodOptions, http.MethodPost)
	s.HandleFunc("/messages", t.Messages).Methods(http.MethodOptions, http.MethodGet)

	sessions := session.Middleware(config.Current.Session.CookieName, config.Current.Session.TTL)
	h := viewHandler{db: stateDB, cat: cat, maxBytes: maxBytes}
	s.Handle("/views", sessions(http.HandlerFunc(h.EndSession))).Methods(http.MethodOptions, http.MethodDelete)

	v := s.PathPrefix("/views").Subrouter()
	v.Use(sessions)
	v.HandleFunc("/{tool}", h.GetView).Methods(http.MethodOptions, http.MethodGet)
	v.HandleFunc("/{tool}/kind", h.SetKind).Methods(http.MethodOptions, http.MethodPut)
	v.HandleFunc("/{tool}/input", h.HandleInput).Methods(http.MethodOptions, http.MethodPut, http.MethodDelete)
	v.HandleFunc("/{tool}/output", h.ClearOutput).Methods(http.MethodOptions, http.MethodDelete)
	v.HandleFunc("/{tool}/copy", h.Copy).Methods(http.MethodOptions, http.MethodPost)
	v.HandleFunc("/{tool}/{op:encode|decode}", h.Run).Methods(http.MethodOptions, http.MethodPost)
}
