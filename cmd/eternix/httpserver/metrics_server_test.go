// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vechain/eternix/metrics"
)

func TestStartMetricsServer(t *testing.T) {
	metrics.InitializePrometheusMetrics()
	metrics.Counter("httpserver_test").Add(1)

	url, closeFunc, err := StartMetricsServer("localhost:0")
	require.NoError(t, err)
	defer closeFunc()
	assert.True(t, strings.HasSuffix(url, "/metrics"))

	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(res.Body)
	require.NoError(t, err)
	require.Contains(t, families, "eternix_httpserver_test")
	assert.Equal(t, float64(1), families["eternix_httpserver_test"].GetMetric()[0].GetCounter().GetValue())
}

func TestStartAPIServer(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	url, closeFunc, err := StartAPIServer("localhost:0", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	require.NoError(t, err)

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	res, err := client.Get(url + "/anything")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusTeapot, res.StatusCode)

	closeFunc()

	_, _, err = StartAPIServer("256.0.0.1:1", http.NotFoundHandler())
	assert.Error(t, err)
}
