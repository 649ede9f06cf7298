package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/rdb-retention/internal/retention"
)

func TestObserveRun(t *testing.T) {
	c := New(nil)
	now := time.Unix(1700000000, 0)

	c.ObserveRun(retention.Summary{
		Total: 5, Kept: 3, Removed: 2,
		ByRule: map[retention.Rule]int{retention.RuleLast: 1, retention.RuleDaily: 2},
	}, now)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.records.WithLabelValues("keep")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.records.WithLabelValues("remove")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.keptByRule.WithLabelValues("keep-daily")))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(c.lastRun))

	// rules that keep nothing in the next run disappear
	c.ObserveRun(retention.Summary{Kept: 1, ByRule: map[retention.Rule]int{retention.RuleYearly: 1}}, now)
	assert.Equal(t, 1, testutil.CollectAndCount(c.keptByRule))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.runs.WithLabelValues("ok")))
}

func TestObserveError(t *testing.T) {
	c := New(nil)
	c.ObserveError()
	c.ObserveError()
	assert.Equal(t, 2.0, testutil.ToFloat64(c.runs.WithLabelValues("error")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New(nil)
	c.ObserveRun(retention.Summary{Kept: 1, ByRule: map[retention.Rule]int{retention.RuleAll: 1}}, time.Unix(1, 0))

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `rdb_retention_kept_by_rule{rule="keep-all"} 1`)
	assert.Contains(t, string(body), `rdb_retention_runs_total{result="ok"} 1`)
}
