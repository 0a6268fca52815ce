package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/pressuremap-backend-go/internal/database"
	"github.com/jengzang/pressuremap-backend-go/internal/heatmap"
	"github.com/jengzang/pressuremap-backend-go/internal/models"
	"github.com/jengzang/pressuremap-backend-go/internal/repository"
	"github.com/jengzang/pressuremap-backend-go/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct{}

func (staticSource) Pressure() []models.PressurePoint {
	return []models.PressurePoint{
		{ID: "sacral", Name: "Sacral Zone", X: 0.5, Y: 0.65, CurrentPressure: 0.7, AccumulatedTime: 8100000},
		{ID: "heel_left", Name: "Left Heel", X: 0.3, Y: 0.9, CurrentPressure: 0.4},
	}
}

func (staticSource) Predictions() []models.PredictionPoint {
	return []models.PredictionPoint{{ZoneID: "knee_right", ZoneName: "Right Knee", Probability: 0.68, TimeToIncrease: 35}}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := database.Open(database.Config{Path: database.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, database.NewMigrationManager(conn).RunMigrations())

	repo := repository.NewHistoryRepository(conn)
	now := time.Now()
	require.NoError(t, repo.InsertBatch(context.Background(), []models.HistoryEntry{
		{ID: "1", Timestamp: now.Add(-10 * time.Minute).UnixMilli(), ZoneID: "sacral", ZoneName: "Sacral Zone", PressureLevel: 0.9, CoolingActivated: true},
		{ID: "2", Timestamp: now.Add(-3 * time.Hour).UnixMilli(), ZoneID: "heel_left", ZoneName: "Left Heel", PressureLevel: 0.3},
		{ID: "3", Timestamp: now.Add(-30 * time.Hour).UnixMilli(), ZoneID: "sacral", ZoneName: "Sacral Zone", PressureLevel: 0.5},
	}))

	pressure := service.NewPressureService(staticSource{})
	devices := service.NewDeviceService("test-secret", time.Hour)
	router := SetupRouter(Services{
		Pressure: pressure,
		Heatmap:  service.NewHeatmapService(pressure, heatmap.SurfaceDimensions{Width: 40, Height: 80}),
		History:  service.NewHistoryService(repo),
		Devices:  devices,
	})

	s := &testServer{router: router}
	w := s.do(t, http.MethodPost, "/api/v1/devices/pair", `{"serial_number":"pg-2024-001234"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var session models.DeviceSession
	decode(t, w, &session)
	require.Equal(t, "PG-2024-001234", session.SerialNumber)
	s.token = session.Token
	return s
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, 0, env.Code, env.Message)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequiresToken(t *testing.T) {
	s := newTestServer(t)
	s.token = ""
	w := s.do(t, http.MethodGet, "/api/v1/pressure", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPairRejectsBlankSerial(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/v1/devices/pair", `{"serial_number":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/devices/pair", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPressure(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/pressure", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snap service.PressureSnapshot
	decode(t, w, &snap)
	assert.Len(t, snap.Zones, 2)
	require.Len(t, snap.Alerts, 1)
	assert.Equal(t, "sacral", snap.Alerts[0].ID)
	assert.Equal(t, models.AlertWarning, snap.Alerts[0].Level)
}

func TestGetPredictions(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/predictions", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
	}
	decode(t, w, &body)
	assert.Equal(t, 1, body.Count)
}

func TestGetHeatmap(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/heatmap?cols=4&rows=8", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Grid struct {
			Cols        int       `json:"cols"`
			Rows        int       `json:"rows"`
			Intensities []float64 `json:"intensities"`
			Categories  []string  `json:"categories"`
		} `json:"grid"`
		Palette []models.PaletteEntry `json:"palette"`
	}
	decode(t, w, &body)
	assert.Equal(t, 4, body.Grid.Cols)
	assert.Len(t, body.Grid.Intensities, 32)
	assert.Contains(t, body.Grid.Categories, "none")

	w = s.do(t, http.MethodGet, "/api/v1/heatmap?width=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/heatmap?cols=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHeatmapImage(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/heatmap.png?width=20&height=40", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestPostIntensity(t *testing.T) {
	s := newTestServer(t)

	body := `{"position":{"x":400,"y":300},
		"sources":[{"x":0.5,"y":0.5,"pressure":0.9,"influence_radius":0.15}],
		"surface":{"width":800,"height":600}}`
	w := s.do(t, http.MethodPost, "/api/v1/heatmap/intensity", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Intensity float64 `json:"intensity"`
		Category  string  `json:"category"`
		Color     string  `json:"color"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 0.9, resp.Intensity)
	assert.Equal(t, "critical", resp.Category)

	body = `{"position":{"x":0,"y":0},
		"sources":[{"x":0.5,"y":0.5,"pressure":0.9,"influence_radius":0.15}],
		"surface":{"width":800,"height":600}}`
	w = s.do(t, http.MethodPost, "/api/v1/heatmap/intensity", body)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, 0.0, resp.Intensity)
	assert.Equal(t, "none", resp.Category)

	body = `{"position":{"x":0,"y":0},
		"sources":[{"x":0.5,"y":0.5,"pressure":0.9,"influence_radius":0}],
		"surface":{"width":800,"height":600}}`
	w = s.do(t, http.MethodPost, "/api/v1/heatmap/intensity", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHistory(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"?range=1h", 1},
		{"?range=all", 3},
		{"?range=all&zone=Sacral%20Zone", 2},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/api/v1/history"+tt.query, "")
			require.Equal(t, http.StatusOK, w.Code)
			var body struct {
				Count int `json:"count"`
			}
			decode(t, w, &body)
			assert.Equal(t, tt.want, body.Count)
		})
	}

	w := s.do(t, http.MethodGet, "/api/v1/history?range=7d", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHistoryStatistics(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/history/stats?range=all", "")
	require.Equal(t, http.StatusOK, w.Code)

	var st models.HistoryStatistics
	decode(t, w, &st)
	assert.Equal(t, 3, st.TotalEvents)
	assert.Equal(t, 1, st.CriticalEvents)
	assert.Equal(t, 1, st.CoolingActivations)
	assert.Equal(t, "Sacral Zone", st.MostAffectedZone)
	assert.Equal(t, models.TrendStable, st.Trend)
}
