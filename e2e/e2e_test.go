// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuanzicheng/dev-tools/internal/config"
	"github.com/yuanzicheng/dev-tools/internal/i18n"
	"github.com/yuanzicheng/dev-tools/internal/landing"
	"github.com/yuanzicheng/dev-tools/internal/session"
	"github.com/yuanzicheng/dev-tools/internal/templates"
	"github.com/yuanzicheng/dev-tools/internal/tools"
	"golang.org/x/text/language"
)

type pageView struct {
	Kind      string `json:"kind"`
	Text      string `json:"text"`
	FileName  string `json:"fileName"`
	State     string `json:"state"`
	Output    string `json:"output"`
	Error     string `json:"error"`
	Clipboard string `json:"clipboard"`
}

func newServer(t *testing.T) (*httptest.Server, *http.Client) {
	config.LoadConfig()

	db, err := session.InitializeBadgerDB(session.BadgerOptions{InMemory: true, TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, templates.SetupTemplates(templates.Static))

	cat := i18n.New(language.English)
	r := mux.NewRouter()
	tools.SetupRoutes(r, db, cat)
	landing.SetupRoutes(r, cat)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

func call(t *testing.T, client *http.Client, method, url string, body interface{}) pageView {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "%s %s", method, url)

	var v pageView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestBase64Page(t *testing.T) {
	srv, client := newServer(t)
	base := srv.URL + "/api/views/base64"

	v := call(t, client, http.MethodPut, base+"/input", map[string]string{"text": "héllo🌍"})
	assert.Equal(t, "ready", v.State)

	v = call(t, client, http.MethodPost, base+"/encode", nil)
	require.Equal(t, "success", v.State)
	encoded := v.Output

	call(t, client, http.MethodPut, base+"/input", map[string]string{"text": encoded})
	v = call(t, client, http.MethodPost, base+"/decode", nil)
	assert.Equal(t, "héllo🌍", v.Output)

	v = call(t, client, http.MethodPost, base+"/copy", nil)
	assert.Equal(t, "héllo🌍", v.Clipboard)

	// File mode
	v = call(t, client, http.MethodPut, base+"/kind", map[string]string{"kind": "file"})
	assert.Equal(t, "idle", v.State)

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	fw, err := mw.CreateFormFile("file", "abc.bin")
	require.NoError(t, err)
	_, err = fw.Write([]byte{0x41, 0x42, 0x43})
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPut, base+"/input", &form)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	v = call(t, client, http.MethodPost, base+"/encode", nil)
	assert.Equal(t, "abc.bin", v.FileName)
	assert.Equal(t, "QUJD", v.Output)
}

func TestJWTPage(t *testing.T) {
	srv, client := newServer(t)
	base := srv.URL + "/api/views/jwt"

	call(t, client, http.MethodPut, base+"/input", map[string]string{"text": "abc"})
	v := call(t, client, http.MethodPost, base+"/decode", nil)
	assert.Equal(t, "failed", v.State)
	assert.Contains(t, v.Error, "missing part #2")

	call(t, client, http.MethodPut, base+"/input", map[string]string{"text": "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0."})
	v = call(t, client, http.MethodPost, base+"/decode", nil)
	assert.Equal(t, "success", v.State)
	assert.Equal(t, "", v.Error)
	assert.Equal(t, "Header:\n{\n  \"alg\": \"HS256\"\n}\n\nPayload:\n{\n  \"sub\": \"1234567890\"\n}\n\nSignature:\nNone", v.Output)
}

func TestURLPage(t *testing.T) {
	srv, client := newServer(t)
	base := srv.URL + "/api/views/url"

	call(t, client, http.MethodPut, base+"/input", map[string]string{"text": "a b&c=d"})
	v := call(t, client, http.MethodPost, base+"/encode", nil)
	assert.Equal(t, "a%20b%26c%3Dd", v.Output)

	v = call(t, client, http.MethodDelete, base+"/output", nil)
	assert.Equal(t, "ready", v.State)

	v = call(t, client, http.MethodDelete, base+"/input", nil)
	assert.Equal(t, "idle", v.State)

	// Empty input is not an error.
	v = call(t, client, http.MethodPost, base+"/decode", nil)
	assert.Equal(t, "idle", v.State)
	assert.Equal(t, "", v.Error)
}

func TestLandingPage(t *testing.T) {
	srv, client := newServer(t)

	resp, err := client.Get(srv.URL + "/?lang=zh")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "开发者工具")
	assert.Contains(t, string(body), "/api/views/base64")
}
