package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/a2a"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/analyzer"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/controller"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func sampleReport() *models.AnalysisReport {
	return &models.AnalysisReport{
		Interactivity:   models.CriteriaReport{Score: 9, Explanation: "Banyak ajakan interaksi."},
		Entertainment:   models.CriteriaReport{Score: 8, Explanation: "Visual menarik."},
		Relevance:       models.CriteriaReport{Score: 7, Explanation: "Sesuai minat."},
		Informativeness: models.CriteriaReport{Score: 4, Explanation: "Kurang detail."},
		PurchaseInfluence: models.PurchaseInfluence{
			Likelihood:  models.LikelihoodHigh,
			Explanation: "Produk terlihat jelas.",
		},
		OverallSummary: "Bagus.",
		Suggestions:    []string{"Cantumkan harga."},
	}
}

type testServer struct {
	router  *gin.Engine
	release chan struct{}
}

// newTestServer builds a router whose requester blocks until release is
// closed, then returns result.
func newTestServer(t *testing.T, result *models.AnalysisReport, resultErr error) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	release := make(chan struct{})
	requester := analyzer.RequesterFunc(func(context.Context, models.AnalysisRequest) (*models.AnalysisReport, error) {
		<-release
		return result, resultErr
	})
	logger := zaptest.NewLogger(t)
	ctrl := controller.New(requester, logger)
	router := NewRouter(ctrl, a2a.NewA2AHandler(requester, logger), logger)

	ts := &testServer{router: router, release: release}
	t.Cleanup(ts.finish)
	return ts
}

func (ts *testServer) finish() {
	select {
	case <-ts.release:
	default:
		close(ts.release)
	}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, controller.View) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	ts.router.ServeHTTP(w, req)

	var view controller.View
	_ = json.Unmarshal(w.Body.Bytes(), &view)
	return w, view
}

func (ts *testServer) fillValid(t *testing.T) {
	t.Helper()
	edits := []struct{ path, field, value string }{
		{"/api/form/audience", "location", "Jakarta"},
		{"/api/form/audience", "interests", "fashion"},
		{"/api/form/content", "caption", "Outfit baru!"},
	}
	for _, e := range edits {
		w, _ := ts.do(t, http.MethodPatch, e.path, fieldRequest{Field: e.field, Value: e.value})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, sampleReport(), nil)
	w, _ := ts.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestOptions(t *testing.T) {
	ts := newTestServer(t, sampleReport(), nil)
	w, _ := ts.do(t, http.MethodGet, "/api/options", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp optionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.GenderOptions, resp.Genders)
	assert.Equal(t, models.LikelihoodLabels, resp.Likelihoods)
	require.Len(t, resp.Criteria, 4)
	assert.Equal(t, "Interaktivitas", resp.Criteria[0].Title)
}

func TestForm_InitialState(t *testing.T) {
	ts := newTestServer(t, sampleReport(), nil)
	w, view := ts.do(t, http.MethodGet, "/api/form", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, controller.PhaseIdle, view.Phase)
	assert.Equal(t, models.DefaultAudience(), view.Audience)
	assert.False(t, view.IsLoading)
	assert.Nil(t, view.Report)
	assert.Nil(t, view.Error)
}

func TestForm_FieldEdits(t *testing.T) {
	ts := newTestServer(t, sampleReport(), nil)

	w, view := ts.do(t, http.MethodPatch, "/api/form/audience", fieldRequest{Field: "gender", Value: models.GenderFemale})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.GenderFemale, view.Audience.Gender)

	w, view = ts.do(t, http.MethodPatch, "/api/form/content", fieldRequest{Field: "link", Value: "https://www.instagram.com/p/1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://www.instagram.com/p/1", view.Content.Link)
}

func TestForm_FieldEditErrors(t *testing.T) {
	ts := newTestServer(t, sampleReport(), nil)

	cases := []struct {
		name string
		path string
		body interface{}
	}{
		{"unknown audience field", "/api/form/audience", fieldRequest{Field: "shoeSize", Value: "42"}},
		{"unknown gender", "/api/form/audience", fieldRequest{Field: "gender", Value: "Lainnya"}},
		{"unknown content field", "/api/form/content", fieldRequest{Field: "hashtags", Value: "#ootd"}},
		{"missing field name", "/api/form/content", map[string]string{"value": "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := ts.do(t, http.MethodPatch, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	_, view := ts.do(t, http.MethodGet, "/api/form", nil)
	assert.Equal(t, models.GenderAll, view.Audience.Gender)
}

func TestSubmit_ValidationFailure(t *testing.T) {
	ts := newTestServer(t, sampleReport(), nil)

	w, view := ts.do(t, http.MethodPost, "/api/form/submit", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, controller.PhaseFailed, view.Phase)
	require.NotNil(t, view.Error)
	assert.NotEmpty(t, *view.Error)
}

func TestSubmit_AcceptedThenConflict(t *testing.T) {
	ts := newTestServer(t, sampleReport(), nil)
	ts.fillValid(t)

	w, view := ts.do(t, http.MethodPost, "/api/form/submit", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, view.IsLoading)

	w, _ = ts.do(t, http.MethodPost, "/api/form/submit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	ts.finish()
	require.Eventually(t, func() bool {
		_, view := ts.do(t, http.MethodGet, "/api/form", nil)
		return view.Phase == controller.PhaseDisplaying
	}, time.Second, 10*time.Millisecond)
}

func TestSubmit_ConcurrentPostsAcceptOnlyOne(t *testing.T) {
	ts := newTestServer(t, sampleReport(), nil)
	ts.fillValid(t)

	const posts = 8
	codes := make([]int, posts)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < posts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			w := httptest.NewRecorder()
			ts.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/form/submit", nil))
			codes[i] = w.Code
		}(i)
	}
	close(start)
	wg.Wait()

	accepted, conflicts := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusAccepted:
			accepted++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, accepted, "codes: %v", codes)
	assert.Equal(t, posts-1, conflicts, "codes: %v", codes)

	ts.finish()
	require.Eventually(t, func() bool {
		_, view := ts.do(t, http.MethodGet, "/api/form", nil)
		return view.Phase == controller.PhaseDisplaying
	}, time.Second, 10*time.Millisecond)
}

func TestSubmit_Wait(t *testing.T) {
	ts := newTestServer(t, sampleReport(), nil)
	ts.fillValid(t)
	ts.finish()

	w, view := ts.do(t, http.MethodPost, "/api/form/submit?wait=true", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, controller.PhaseDisplaying, view.Phase)
	require.NotNil(t, view.Report)
	assert.Equal(t, sampleReport(), view.Report)
}

func TestSubmit_WaitRequestFailure(t *testing.T) {
	ts := newTestServer(t, nil, errors.New("server sedang sibuk"))
	ts.fillValid(t)
	ts.finish()

	w, view := ts.do(t, http.MethodPost, "/api/form/submit?wait=true", nil)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, controller.PhaseFailed, view.Phase)
	require.NotNil(t, view.Error)
	assert.Contains(t, *view.Error, "server sedang sibuk")
	assert.Nil(t, view.Report)
}

func TestAgentRoutesMounted(t *testing.T) {
	ts := newTestServer(t, sampleReport(), nil)

	w, _ := ts.do(t, http.MethodGet, "/.well-known/agent.json", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/a2a/analyzer", map[string]interface{}{
		"jsonrpc": "2.0", "id": "1", "method": "nope",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "-32601")
}
