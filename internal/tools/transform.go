package tools

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/yuanzicheng/dev-tools/internal/i18n"
	"github.com/yuanzicheng/dev-tools/pkg/codec"
	"github.com/yuanzicheng/dev-tools/pkg/jwt"
	"github.com/yuanzicheng/dev-tools/pkg/transform"
)

type transformHandler struct {
	cat      *i18n.Catalog
	maxBytes int64
}

type toolInfo struct {
	Name         string                 `json:"name"`
	Title        string                 `json:"title"`
	Capabilities transform.Capabilities `json:"capabilities"`
}

type transformResponse struct {
	Status transform.Status `json:"status"`
	Output string           `json:"output"`
	Error  string           `json:"error,omitempty"`
	Kind   string           `json:"kind,omitempty"`

	// JWT decode only
	Header     interface{}           `json:"header,omitempty"`
	Payload    interface{}           `json:"payload,omitempty"`
	Signature  string                `json:"signature,omitempty"`
	Registered *jwt.RegisteredClaims `json:"registered,omitempty"`
	Times      map[string]string     `json:"times,omitempty"`
}

type messagesResponse struct {
	Lang     string            `json:"lang"`
	Messages map[string]string `json:"messages"`
}

func (h transformHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	tag := h.cat.Match(r.Header.Get("Accept-Language"), r.URL.Query().Get("lang"))

	engines := transform.Engines()
	tools := make([]toolInfo, 0, len(engines))
	for _, e := range engines {
		tools = append(tools, toolInfo{
			Name:         e.Name(),
			Title:        h.cat.Lookup(tag, i18n.Menu(e.Name())),
			Capabilities: e.Capabilities(),
		})
	}
	writeJSON(w, http.StatusOK, tools)
}

func (h transformHandler) Messages(w http.ResponseWriter, r *http.Request) {
	tag := h.cat.Match(r.Header.Get("Accept-Language"), r.URL.Query().Get("lang"))
	writeJSON(w, http.StatusOK, messagesResponse{
		Lang:     tag.String(),
		Messages: h.cat.All(tag),
	})
}

// Transform runs a single stateless transform on a JSON text body or a
// multipart file upload.
func (h transformHandler) Transform(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	engine, err := transform.Lookup(vars["tool"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	op, err := transform.ParseOp(vars["op"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var in transform.Input
	if isMultipart(r) {
		f, status, err := readFile(w, r, h.maxBytes)
		if err != nil {
			writeError(w, status, err)
			return
		}
		in.File = f
	} else {
		text, err := readText(w, r, h.maxBytes)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		in.Text = text
	}

	res := transform.Run(r.Context(), engine, op, in)
	resp := transformResponse{
		Status: res.Status(),
		Output: res.Output(),
		Error:  res.Message(),
		Kind:   codec.KindOf(res.Err()),
	}

	switch {
	case errors.Is(res.Err(), transform.ErrUnsupported):
		writeJSON(w, http.StatusBadRequest, resp)
		return
	case res.IsFailure():
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	if engine.Name() == transform.NameJWT && res.Status() == transform.StatusSuccess {
		addTokenDetails(&resp, in.Text)
	}
	writeJSON(w, http.StatusOK, resp)
}

func addTokenDetails(resp *transformResponse, raw string) {
	token, err := jwt.Decode(raw)
	if err != nil {
		return
	}
	resp.Header = token.Header
	resp.Payload = token.Payload
	resp.Signature = token.Signature
	resp.Times = token.Times()
	if registered, err := token.RegisteredClaims(); err == nil {
		resp.Registered = registered
	}
}
