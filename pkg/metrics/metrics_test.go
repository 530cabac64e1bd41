// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.ActionsCreated.WithLabelValues("pequeno", "vitoria").Inc()
	m.XPGranted.Add(10)
	m.GateRejections.WithLabelValues("403").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ActionsCreated.WithLabelValues("pequeno", "vitoria")))
	assert.Equal(t, float64(10), testutil.ToFloat64(m.XPGranted))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.StatSyncFailed))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.XPGranted.Add(25)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "opsboard_xp_granted_total 25"))
}

func TestMetrics_RegisterDuplicate(t *testing.T) {
	m := NewMetrics()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "extra_total", Help: "x"})

	require.NoError(t, m.RegisterCollector(c))
	assert.Error(t, m.RegisterCollector(c))
}
