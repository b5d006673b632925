package projection

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aevon-lab/stationstats/internal/core/aggregation"
	httperr "github.com/aevon-lab/stationstats/internal/core/errors"
	"github.com/aevon-lab/stationstats/internal/core/station"
	"github.com/aevon-lab/stationstats/internal/core/storage"
	storagemocks "github.com/aevon-lab/stationstats/internal/mocks/storage"
	"github.com/aevon-lab/stationstats/internal/report"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type aggregatorSource struct {
	*aggregation.Aggregator
}

func (s aggregatorSource) Report() aggregation.Report { return s.SnapshotSorted() }

func newTestSource() aggregatorSource {
	agg := aggregation.NewAggregator()
	agg.Observe(station.MustKey("Hamburg"), 12.0)
	agg.Observe(station.MustKey("Berlin"), 1.0)
	agg.Observe(station.MustKey("Berlin"), 3.0)
	return aggregatorSource{agg}
}

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func serve(r http.Handler, target string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, target, nil))
	return resp
}

func TestService_HandleReport(t *testing.T) {
	r := newTestRouter(NewService(newTestSource(), nil))

	t.Run("text", func(t *testing.T) {
		resp := serve(r, "/v1/report?format=text")
		require.Equal(t, http.StatusOK, resp.Code)
		require.Equal(t, "{Berlin=1.00/2.00/3.00, Hamburg=12.00/12.00/12.00}", resp.Body.String())
	})

	t.Run("json by default", func(t *testing.T) {
		resp := serve(r, "/v1/report")
		require.Equal(t, http.StatusOK, resp.Code)

		var doc report.Document
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &doc))
		require.Equal(t, 2, doc.StationCount)
		require.Equal(t, "Berlin", doc.Stations[0].Station)
		require.Equal(t, int64(2), doc.Stations[0].Count)
		require.Equal(t, report.Temperature(2), doc.Stations[0].Mean)
		require.Equal(t, "Hamburg", doc.Stations[1].Station)
	})

	t.Run("unknown format", func(t *testing.T) {
		resp := serve(r, "/v1/report?format=xml")
		require.Equal(t, http.StatusBadRequest, resp.Code)
		requireErrorType(t, resp, httperr.HttpInvalidRequestError)
	})
}

func TestService_HandleReport_Empty(t *testing.T) {
	r := newTestRouter(NewService(aggregatorSource{aggregation.NewAggregator()}, nil))

	resp := serve(r, "/v1/report?format=text")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "{}", resp.Body.String())
}

func TestService_HandleStation_StatusMapping(t *testing.T) {
	r := newTestRouter(NewService(newTestSource(), nil))

	tests := []struct {
		name           string
		station        string
		expectedStatus int
		expectedType   string
	}{
		{name: "known station", station: "Berlin", expectedStatus: http.StatusOK},
		{name: "unknown station returns 404", station: "Paris", expectedStatus: http.StatusNotFound, expectedType: httperr.HttpStationNotFound},
		{name: "oversized name returns 400", station: strings.Repeat("a", station.MaxKeyLen+1), expectedStatus: http.StatusBadRequest, expectedType: httperr.HttpInvalidRequestError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := serve(r, "/v1/stations/"+tc.station)
			require.Equal(t, tc.expectedStatus, resp.Code)
			if tc.expectedType != "" {
				requireErrorType(t, resp, tc.expectedType)
			}
		})
	}
}

func TestService_HandleStation_Body(t *testing.T) {
	r := newTestRouter(NewService(newTestSource(), nil))

	resp := serve(r, "/v1/stations/Berlin")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Summary  report.StationSummary `json:"summary"`
		Rendered string                `json:"rendered"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, report.StationSummary{Station: "Berlin", Min: 1, Mean: 2, Max: 3, Count: 2}, body.Summary)
	require.Equal(t, "1.00/2.00/3.00", body.Rendered)
}

func TestService_HandleRun_StatusMapping(t *testing.T) {
	id := uuid.MustParse("6f1c7f7e-2b7a-4d55-9a43-5d7c2f0f4c11")

	tests := []struct {
		name           string
		path           string
		withStore      bool
		configureStore func(store *storagemocks.ReportStore)
		expectedStatus int
		expectedType   string
	}{
		{
			name:           "malformed id returns 400",
			path:           "/v1/runs/not-a-uuid",
			withStore:      true,
			configureStore: func(_ *storagemocks.ReportStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidRequestError,
		},
		{
			name:           "no store returns 503",
			path:           "/v1/runs/" + id.String(),
			expectedStatus: http.StatusServiceUnavailable,
			expectedType:   httperr.HttpStoreUnavailable,
		},
		{
			name:      "missing run returns 404",
			path:      "/v1/runs/" + id.String(),
			withStore: true,
			configureStore: func(store *storagemocks.ReportStore) {
				store.EXPECT().LoadRun(mock.Anything, id).Return(nil, storage.ErrRunNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedType:   httperr.HttpRunNotFound,
		},
		{
			name:      "store failure returns 500",
			path:      "/v1/runs/" + id.String(),
			withStore: true,
			configureStore: func(store *storagemocks.ReportStore) {
				store.EXPECT().LoadRun(mock.Anything, id).Return(nil, errors.New("connection reset")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedType:   httperr.HttpInternalError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var svc *Service
			if tc.withStore {
				store := storagemocks.NewReportStore(t)
				tc.configureStore(store)
				svc = NewService(newTestSource(), store)
			} else {
				svc = NewService(newTestSource(), nil)
			}

			resp := serve(newTestRouter(svc), tc.path)
			require.Equal(t, tc.expectedStatus, resp.Code)
			requireErrorType(t, resp, tc.expectedType)
		})
	}
}

func TestService_HandleRun_CachesLoadedRun(t *testing.T) {
	started := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	run := &storage.Run{
		ID:         uuid.MustParse("0b6b3a43-93a3-4b4e-8a51-7d5b1e0b9a20"),
		Source:     "measurements.txt",
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		LinesRead:  3,
		Complete:   true,
		Report:     newTestSource().Report(),
	}

	store := storagemocks.NewReportStore(t)
	store.EXPECT().LoadRun(mock.Anything, run.ID).Return(run, nil).Once()

	r := newTestRouter(NewService(newTestSource(), store))

	for i := 0; i < 2; i++ {
		resp := serve(r, "/v1/runs/"+run.ID.String())
		require.Equal(t, http.StatusOK, resp.Code)

		var body RunResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.Equal(t, run.ID, body.ID)
		require.Equal(t, "measurements.txt", body.Source)
		require.Equal(t, "2026-03-01T08:00:00Z", body.StartedAt)
		require.True(t, body.Complete)
		require.Equal(t, 2, body.Report.StationCount)
		require.Equal(t, "{Berlin=1.00/2.00/3.00, Hamburg=12.00/12.00/12.00}", body.Rendered)
	}
}

func requireErrorType(t *testing.T, resp *httptest.ResponseRecorder, want string) {
	t.Helper()
	var body httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, want, body.ErrorType)
}
