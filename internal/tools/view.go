package tools

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/yuanzicheng/dev-tools/internal/i18n"
	"github.com/yuanzicheng/dev-tools/internal/session"
	"github.com/yuanzicheng/dev-tools/internal/view"
	"github.com/yuanzicheng/dev-tools/pkg/codec"
	"github.com/yuanzicheng/dev-tools/pkg/transform"
	"golang.org/x/text/language"
)

// ErrNoSession is returned when a view request carries no session.
var ErrNoSession = errors.New("no session")

type viewHandler struct {
	db       session.StateDB
	cat      *i18n.Catalog
	maxBytes int64
}

type notice struct {
	Type    string `json:"type"` // success or error
	Message string `json:"message"`
}

type viewResponse struct {
	Tool         string                 `json:"tool"`
	Title        string                 `json:"title"`
	Kind         view.Kind              `json:"kind"`
	Text         string                 `json:"text"`
	FileName     string                 `json:"fileName,omitempty"`
	State        view.State             `json:"state"`
	Output       string                 `json:"output"`
	Error        string                 `json:"error,omitempty"`
	ErrorKind    string                 `json:"errorKind,omitempty"`
	Capabilities transform.Capabilities `json:"capabilities"`
	Revision     uint64                 `json:"revision"`
	Notice       *notice                `json:"notice,omitempty"`
	Clipboard    string                 `json:"clipboard,omitempty"`
}

// page is one view loaded for the duration of a request.
type page struct {
	sessionID string
	tool      string
	tag       language.Tag
	ctrl      *view.Controller
}

// load restores the requested view of the current session, or starts an
// idle one.
func (h viewHandler) load(w http.ResponseWriter, r *http.Request) (*page, bool) {
	sessionID, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, ErrNoSession)
		return nil, false
	}

	tool := mux.Vars(r)["tool"]
	engine, err := transform.Lookup(tool)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), session.DefaultTimeout)
	defer cancel()

	ctrl := view.NewController(engine)
	snapshot, err := h.db.GetView(ctx, sessionID, tool)
	switch {
	case err == nil:
		ctrl.Restore(*snapshot)
	case errors.Is(err, session.ErrNotFound):
	default:
		log.Printf("Error loading view %s: %v\n", tool, err)
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}

	return &page{
		sessionID: sessionID,
		tool:      tool,
		tag:       h.cat.Match(r.Header.Get("Accept-Language"), r.URL.Query().Get("lang")),
		ctrl:      ctrl,
	}, true
}

// save stores the page and writes it as the response. A page changed by
// another request in the meantime is not saved; the stored one is
// returned with 409 Conflict instead.
func (h viewHandler) save(w http.ResponseWriter, r *http.Request, p *page, n *notice) {
	snapshot, err := p.ctrl.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), session.DefaultTimeout)
	defer cancel()

	rev, err := h.db.SaveView(ctx, p.sessionID, p.tool, snapshot)
	if errors.Is(err, session.ErrStale) {
		log.Printf("Discarding stale %s view for session %s\n", p.tool, p.sessionID)
		current, ok := h.load(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusConflict, h.render(current, nil))
		return
	}
	if err != nil {
		log.Printf("Error saving view %s: %v\n", p.tool, err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	snapshot.Revision = rev
	p.ctrl.Restore(snapshot)
	writeJSON(w, http.StatusOK, h.render(p, n))
}

func (h viewHandler) render(p *page, n *notice) viewResponse {
	in := p.ctrl.Input()
	res := p.ctrl.Result()
	resp := viewResponse{
		Tool:         p.tool,
		Title:        h.cat.Lookup(p.tag, i18n.Menu(p.tool)),
		Kind:         in.Kind,
		Text:         in.Text,
		State:        p.ctrl.State(),
		Output:       res.Output(),
		Error:        res.Message(),
		ErrorKind:    codec.KindOf(res.Err()),
		Capabilities: p.ctrl.Engine().Capabilities(),
		Revision:     p.ctrl.Revision(),
		Notice:       n,
	}
	if in.File != nil {
		resp.FileName = in.File.Name()
	}
	return resp
}

func (h viewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.render(p, nil))
}

func (h viewHandler) SetKind(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}

	var req kindRequest
	if err := decodeJSON(w, r, h.maxBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := p.ctrl.SetKind(view.Kind(req.Kind)); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.save(w, r, p, nil)
}

func (h viewHandler) HandleInput(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		h.SetInput(w, r)
	case http.MethodDelete:
		h.ClearInput(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

// SetInput replaces the text (JSON body) or file (multipart body) input.
func (h viewHandler) SetInput(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}

	if isMultipart(r) {
		f, status, err := readFile(w, r, h.maxBytes)
		if err != nil {
			writeError(w, status, err)
			return
		}
		if err := p.ctrl.SetFile(f); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	} else {
		text, err := readText(w, r, h.maxBytes)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		p.ctrl.SetText(text)
	}
	h.save(w, r, p, nil)
}

func (h viewHandler) ClearInput(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	p.ctrl.ClearInput()
	h.save(w, r, p, nil)
}

func (h viewHandler) ClearOutput(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	p.ctrl.ClearOutput()
	h.save(w, r, p, nil)
}

// Run encodes or decodes the current input. A failed transform is not a
// failed request: the view comes back in the failed state with an error
// notice.
func (h viewHandler) Run(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}

	op, err := transform.ParseOp(mux.Vars(r)["op"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	res, err := p.ctrl.Run(r.Context(), op)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var n *notice
	if res.IsFailure() {
		n = &notice{Type: "error", Message: res.Message()}
	}
	h.save(w, r, p, n)
}

// Copy hands the output to the client for the clipboard.
func (h viewHandler) Copy(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}

	out, err := p.ctrl.Copy()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := h.render(p, &notice{Type: "success", Message: h.cat.Lookup(p.tag, i18n.CopySuccess)})
	resp.Clipboard = out
	writeJSON(w, http.StatusOK, resp)
}

// EndSession drops every view of the session, as when the pages are
// unmounted.
func (h viewHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, ErrNoSession)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), session.DefaultTimeout)
	defer cancel()

	if err := h.db.DeleteSession(ctx, sessionID); err != nil {
		log.Printf("Error ending session: %v\n", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
