package web

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"goalcal/internal/calendar"
	"goalcal/internal/config"
	"goalcal/internal/goals"
	"goalcal/internal/model"
	"goalcal/internal/render"
)

type fakeSource struct {
	snap *goals.Snapshot
}

func (f *fakeSource) Current() *goals.Snapshot { return f.snap }

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *fakeSource, *model.Goal) {
	t.Helper()
	sprint := &model.Goal{Name: "Sprint", Start: model.NewDate(2026, 2, 2), End: model.NewDate(2026, 2, 9), Color: "#cc0000"}
	src := &fakeSource{snap: &goals.Snapshot{Goals: []*model.Goal{sprint}, Version: 1}}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := NewServer(cfg, src)
	s.now = func() time.Time { return time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC) }
	return s, src, sprint
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer(t, nil)
	rec := get(t, s.Handler(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}

func TestLayoutEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t, nil)

	rec := get(t, s.Handler(), "/api/layout")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp render.LayoutJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2026, resp.Year)
	require.Equal(t, 2, resp.Month)
	require.Equal(t, model.NewDate(2026, 1, 26), resp.FirstVisible)
	require.Equal(t, calendar.LanePolicyGreedy, resp.Policy)
	require.Len(t, resp.Bars, 2)
	require.True(t, resp.Bars[0].LabelAnchor)
	require.Equal(t, calendar.Box{X0: 22, Y0: 146, X1: 858, Y1: 164}, resp.Bars[0].Box)
	require.Equal(t, [calendar.Rows]int{0, 1, 1, 0, 0, 0}, resp.RowLaneCounts)

	rec = get(t, s.Handler(), "/api/layout?month=2026-03")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Month)
	require.Len(t, resp.Bars, 0)
}

func TestLayoutEndpoint_InvalidMonth(t *testing.T) {
	s, _, _ := newTestServer(t, nil)
	rec := get(t, s.Handler(), "/api/layout?month=2026-13")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	_, err := s.layoutFor(model.Month{Year: 2026, Month: 13})
	require.ErrorIs(t, err, calendar.ErrInvalidArgument)
}

func TestHitEndpoint(t *testing.T) {
	s, src, sprint := newTestServer(t, nil)

	rec := get(t, s.Handler(), "/api/hit?month=2026-02&x=22&y=146")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp hitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Hit)
	require.Equal(t, sprint.Name, resp.Goal.Name)
	require.Equal(t, 1, resp.Bar.Row)

	rec = get(t, s.Handler(), "/api/hit?month=2026-02&x=5&y=5")
	resp = hitResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Hit)

	rec = get(t, s.Handler(), "/api/hit?month=2026-02&x=abc&y=1")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// A new snapshot invalidates cached layouts, so hits follow the redraw.
	src.snap = &goals.Snapshot{Goals: []*model.Goal{}, Version: 2}
	rec = get(t, s.Handler(), "/api/hit?month=2026-02&x=22&y=146")
	resp = hitResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Hit)
}

func TestLayoutCache_SameLayoutForHitAndDraw(t *testing.T) {
	s, _, _ := newTestServer(t, nil)
	m := model.Month{Year: 2026, Month: time.February}

	a, err := s.layoutFor(m)
	require.NoError(t, err)
	b, err := s.layoutFor(m)
	require.NoError(t, err)
	require.Same(t, a, b)
}

func TestPreviewEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t, nil)
	rec := get(t, s.Handler(), "/preview.png?month=2026-02")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	require.Equal(t, calendar.DefaultGeometry().Width(), img.Bounds().Dx())
}

func TestGoalsEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t, nil)
	rec := get(t, s.Handler(), "/api/goals")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp goalsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.EqualValues(t, 1, resp.Version)
	require.Len(t, resp.Goals, 1)
	require.Equal(t, model.NewDate(2026, 2, 9), resp.Goals[0].End)
}

func TestBasicAuth(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.BasicAuth = &config.BasicAuthConfig{Username: "u", Password: "p"}
	s, _, _ := newTestServer(t, cfg)
	h := s.Handler()

	require.Equal(t, http.StatusOK, get(t, h, "/health").Code)
	require.Equal(t, http.StatusUnauthorized, get(t, h, "/api/layout").Code)

	req := httptest.NewRequest(http.MethodGet, "/api/layout", nil)
	req.SetBasicAuth("u", "p")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
