package http

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/reel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spinScript = `frames 4
basename spin
vary turn 0 3 0 1
move 20 20 0
rotate z 90 turn
box -5 5 5 10 10 10
save should-not-exist.png
`

func newTestHandler(opts ...Option) (http.Handler, *reel.Engine) {
	eng := reel.New(reel.WithSize(40, 40), reel.WithStep(6))
	return NewHandler(eng, opts...), eng
}

func TestRender_ReturnsPNG(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest("POST", "/render?frame=2", strings.NewReader(spinScript))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
}

func TestRender_NoSideEffects(t *testing.T) {
	handler, eng := newTestHandler()

	req := httptest.NewRequest("POST", "/render", strings.NewReader(spinScript))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	type lister interface{ List() []string }
	assert.Empty(t, eng.Store().(lister).List())
}

func TestRender_OtherFormat(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest("POST", "/render?type=bmp", strings.NewReader("push\npop\n"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/bmp", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "BM"))
}

func TestRender_Errors(t *testing.T) {
	tests := map[string]struct {
		url    string
		body   string
		status int
	}{
		"parse":        {"/render", "teleport 1 2 3\n", http.StatusUnprocessableEntity},
		"config":       {"/render", "vary k 0 1 0 1\nframes 2\n", http.StatusUnprocessableEntity},
		"underflow":    {"/render", "pop\n", http.StatusUnprocessableEntity},
		"bad frame":    {"/render?frame=two", "push\n", http.StatusBadRequest},
		"out of range": {"/render?frame=9", "push\n", http.StatusInternalServerError},
		"bad type":     {"/render?type=webp", "push\n", http.StatusBadRequest},
	}
	handler, _ := newTestHandler()
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", tt.url, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestFrameLimit(t *testing.T) {
	handler, _ := newTestHandler(WithMaxFrames(10))
	huge := "frames 3000000\nvary k 0 1 0 1\n"

	for _, url := range []string{"/render?frame=2999999", "/timeline"} {
		req := httptest.NewRequest("POST", url, strings.NewReader(huge))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, url)
		assert.Contains(t, w.Body.String(), "exceeds the limit of 10", url)
	}

	req := httptest.NewRequest("POST", "/timeline", strings.NewReader("frames 10\nvary k 0 9 0 1\n"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "the limit itself is allowed")
}

func TestFrameLimit_Default(t *testing.T) {
	handler, _ := newTestHandler()
	req := httptest.NewRequest("POST", "/timeline", strings.NewReader("frames 1000000000\n"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTimeline_JSON(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest("POST", "/timeline", strings.NewReader(spinScript))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var plan reel.Plan
	require.NoError(t, json.NewDecoder(w.Body).Decode(&plan))
	assert.Equal(t, 4, plan.Frames)
	assert.Equal(t, "spin", plan.Basename)
	require.Len(t, plan.Knobs, 4)
	assert.Equal(t, 1.0, plan.Knobs[3]["turn"])
}

func TestTimeline_YAMLDocument(t *testing.T) {
	handler, _ := newTestHandler()
	body := "commands:\n  - op: frames\n    args: [2]\n"

	req := httptest.NewRequest("POST", "/timeline", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/yaml")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"frames":2`)
}

func TestHealthAndMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("reel_frames_total 0\n"))
	})
	handler, _ := newTestHandler(WithMetricsHandler(metrics))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, w.Body.String(), "reel_frames_total")

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/render", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
