package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkstudio/inkstudio/pkg/models"
	"github.com/inkstudio/inkstudio/pkg/provider"
)

type testClient struct {
	t   *testing.T
	srv *Server
}

func newTestClient(t *testing.T, p provider.ElementProvider) *testClient {
	t.Helper()
	srv := New(models.DefaultSettings(), p)
	t.Cleanup(func() { srv.sessions.CloseAll() })
	return &testClient{t: t, srv: srv}
}

func (tc *testClient) do(method, path, body string, out interface{}) int {
	tc.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := tc.srv.App().Test(req)
	require.NoError(tc.t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(tc.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (tc *testClient) open() sessionPayload {
	tc.t.Helper()
	var sess sessionPayload
	status := tc.do(http.MethodPost, "/sessions", `{"image":"`+provider.PlaceholderImage()+`"}`, &sess)
	require.Equal(tc.t, http.StatusCreated, status)
	return sess
}

type mutationResponse struct {
	Changed bool           `json:"changed"`
	Session sessionPayload `json:"session"`
}

func TestHealth(t *testing.T) {
	tc := newTestClient(t, nil)

	var body map[string]interface{}
	assert.Equal(t, http.StatusOK, tc.do(http.MethodGet, "/health/live", "", &body))
	assert.Equal(t, "alive", body["status"])
	assert.Equal(t, http.StatusOK, tc.do(http.MethodGet, "/health/ready", "", &body))
	assert.Equal(t, "ready", body["status"])
}

func TestOpenSession(t *testing.T) {
	tc := newTestClient(t, nil)

	sess := tc.open()
	assert.NotEmpty(t, sess.ID)
	require.Len(t, sess.Layers, 1)
	assert.True(t, sess.Layers[0].IsBase)
	assert.False(t, sess.CanUndo)
	assert.Equal(t, "idle", sess.Gesture)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"bad json", `{`},
		{"local path", `{"image":"/etc/passwd"}`},
		{"not an image uri", `{"image":"data:text/plain;base64,AAAA"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]string
			assert.Equal(t, http.StatusBadRequest, tc.do(http.MethodPost, "/sessions", tt.body, &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	tc := newTestClient(t, nil)
	sess := tc.open()

	var got sessionPayload
	assert.Equal(t, http.StatusOK, tc.do(http.MethodGet, "/sessions/"+sess.ID, "", &got))
	assert.Equal(t, sess.ID, got.ID)

	assert.Equal(t, http.StatusNoContent, tc.do(http.MethodDelete, "/sessions/"+sess.ID, "", nil))
	assert.Equal(t, http.StatusNotFound, tc.do(http.MethodDelete, "/sessions/"+sess.ID, "", nil))
	assert.Equal(t, http.StatusNotFound, tc.do(http.MethodGet, "/sessions/"+sess.ID, "", &map[string]string{}))
}

func TestElementsAndEdits(t *testing.T) {
	tc := newTestClient(t, provider.NewStaticProvider(""))
	sess := tc.open()
	base := "/sessions/" + sess.ID

	var added struct {
		LayerID string         `json:"layerId"`
		Session sessionPayload `json:"session"`
	}
	require.Equal(t, http.StatusCreated, tc.do(http.MethodPost, base+"/elements", `{"prompt":"rose"}`, &added))
	require.Len(t, added.Session.Layers, 2)
	assert.Equal(t, added.LayerID, added.Session.Selected)
	assert.True(t, added.Session.CanUndo)

	layer := base + "/layers/" + added.LayerID

	var res mutationResponse
	tc.do(http.MethodPatch, layer, `{"x": 40, "width": 2}`, &struct {
		Changed map[string]bool `json:"changed"`
	}{})
	tc.do(http.MethodGet, base, "", &res.Session)
	assert.Equal(t, 40.0, res.Session.Layers[1].X)
	assert.Equal(t, 50.0, res.Session.Layers[1].Width, "below minimum is ignored")

	assert.Equal(t, http.StatusBadRequest, tc.do(http.MethodPatch, layer, `{"depth": 1}`, &map[string]string{}))

	tc.do(http.MethodPost, layer+"/reorder", `{"direction":"down"}`, &res)
	assert.False(t, res.Changed, "index 1 cannot move down")
	assert.Equal(t, http.StatusBadRequest, tc.do(http.MethodPost, layer+"/reorder", `{"direction":"sideways"}`, &map[string]string{}))

	var cleared map[string]map[string]interface{}
	tc.do(http.MethodPost, base+"/select", `{"layerId":""}`, &cleared)
	selected, ok := cleared["session"]["selected"]
	assert.True(t, ok, "cleared selection is still reported")
	assert.Equal(t, "", selected)
	tc.do(http.MethodPost, base+"/select", `{"layerId":"base"}`, &res)
	assert.False(t, res.Changed)

	tc.do(http.MethodDelete, base+"/layers/base", "", &res)
	assert.False(t, res.Changed)
	assert.Len(t, res.Session.Layers, 2)

	tc.do(http.MethodDelete, layer, "", &res)
	assert.True(t, res.Changed)
	assert.Len(t, res.Session.Layers, 1)

	tc.do(http.MethodPost, base+"/undo", "", &res)
	assert.True(t, res.Changed)
	assert.Len(t, res.Session.Layers, 2)
}

func TestElementErrors(t *testing.T) {
	failing := provider.NewStaticProvider("")
	failing.Err = errors.New("quota exceeded")

	tests := []struct {
		name     string
		provider provider.ElementProvider
		body     string
		status   int
		message  string
	}{
		{"no provider", nil, `{"prompt":"rose"}`, http.StatusServiceUnavailable, ""},
		{"empty prompt", provider.NewStaticProvider(""), `{"prompt":"  "}`, http.StatusBadRequest, ""},
		{"provider failure", failing, `{"prompt":"rose"}`, http.StatusBadGateway, "Failed to generate new element."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestClient(t, tt.provider)
			sess := tc.open()

			var body map[string]string
			assert.Equal(t, tt.status, tc.do(http.MethodPost, "/sessions/"+sess.ID+"/elements", tt.body, &body))
			if tt.message != "" {
				assert.Equal(t, tt.message, body["error"])
			}

			var got sessionPayload
			tc.do(http.MethodGet, "/sessions/"+sess.ID, "", &got)
			assert.Len(t, got.Layers, 1)
		})
	}
}

func TestPointerGestures(t *testing.T) {
	tc := newTestClient(t, provider.NewStaticProvider(""))
	sess := tc.open()
	base := "/sessions/" + sess.ID
	tc.do(http.MethodPost, base+"/elements", `{"prompt":"rose"}`, &map[string]interface{}{})

	canvas := `"canvas":{"left":0,"top":0,"width":200,"height":100}`
	var res mutationResponse

	// press inside the layer body, hit tested server side
	tc.do(http.MethodPost, base+"/pointer", `{"type":"down","x":100,"y":50,`+canvas+`}`, &res)
	assert.True(t, res.Changed)
	assert.Equal(t, "dragging", res.Session.Gesture)

	tc.do(http.MethodPost, base+"/pointer", `{"type":"move","x":120,"y":55,`+canvas+`}`, &res)
	assert.InDelta(t, 35, res.Session.Layers[1].X, 1e-9)
	assert.InDelta(t, 30, res.Session.Layers[1].Y, 1e-9)

	tc.do(http.MethodPost, base+"/pointer", `{"type":"up"}`, &res)
	assert.Equal(t, "idle", res.Session.Gesture)

	// a miss inside the canvas deselects
	res = mutationResponse{}
	tc.do(http.MethodPost, base+"/pointer", `{"type":"down","x":5,"y":5,`+canvas+`}`, &res)
	assert.Empty(t, res.Session.Selected)

	layerID := res.Session.Layers[1].ID
	tc.do(http.MethodPost, base+"/select", `{"layerId":"`+layerID+`"}`, &res)
	tc.do(http.MethodPost, base+"/pointer", `{"type":"down","x":150,"y":75,`+canvas+`,"target":{"kind":"resize","layerId":"`+layerID+`"}}`, &res)
	assert.Equal(t, "resizing", res.Session.Gesture)
	tc.do(http.MethodPost, base+"/pointer", `{"type":"move","x":130,"y":75,`+canvas+`}`, &res)
	assert.InDelta(t, 40, res.Session.Layers[1].Width, 1e-9)
	assert.InDelta(t, 40, res.Session.Layers[1].Height, 1e-9)

	assert.Equal(t, http.StatusBadRequest, tc.do(http.MethodPost, base+"/pointer", `{"type":"hover"}`, &map[string]string{}))
}

func TestDrawList(t *testing.T) {
	tc := newTestClient(t, provider.NewStaticProvider(""))
	sess := tc.open()
	base := "/sessions/" + sess.ID
	tc.do(http.MethodPost, base+"/elements", `{"prompt":"rose"}`, &map[string]interface{}{})

	var body struct {
		Operations []struct {
			LayerID string `json:"layerId"`
			Blend   string `json:"blend"`
			Rect    struct {
				Left, Top, Width, Height float64
			} `json:"rect"`
		} `json:"operations"`
	}
	require.Equal(t, http.StatusOK, tc.do(http.MethodGet, base+"/draw?width=400&height=200", "", &body))
	require.Len(t, body.Operations, 2)
	assert.Equal(t, "normal", body.Operations[0].Blend)
	assert.Equal(t, "multiply", body.Operations[1].Blend)
	assert.Equal(t, 100.0, body.Operations[1].Rect.Left)
	assert.Equal(t, 200.0, body.Operations[1].Rect.Width)

	assert.Equal(t, http.StatusBadRequest, tc.do(http.MethodGet, base+"/draw?width=0", "", &map[string]string{}))
}
