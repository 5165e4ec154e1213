// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/eternix/api/utils"
	"github.com/vechain/eternix/metrics"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func TestMetricsMiddleware(t *testing.T) {
	router := mux.NewRouter()
	router.Path("/ok").Name("test_ok").HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	router.Path("/bad").Name("test_bad").HandlerFunc(utils.WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
		return utils.BadRequest(assert.AnError)
	}))
	router.Path("/unnamed").HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	router.Use(metricsMiddleware)

	for _, path := range []string{"/ok", "/ok", "/bad", "/unnamed"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, f := range families {
		if f.GetName() != "eternix_api_request_count" {
			continue
		}
		for _, m := range f.GetMetric() {
			var name, code string
			for _, l := range m.GetLabel() {
				switch l.GetName() {
				case "name":
					name = l.GetValue()
				case "code":
					code = l.GetValue()
				}
			}
			counts[name+"/"+code] = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{"test_ok/200": 2, "test_bad/400": 1}, counts)
}

func TestRequestLoggerHandler(t *testing.T) {
	called := false
	h := RequestLoggerHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusAccepted)
	}), logger)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/validators", nil))
	assert.True(t, called)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
