package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncrementAuthAttempt(t *testing.T) {
	before := testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "success"))
	IncrementAuthAttempt("login", "success")
	IncrementAuthAttempt("login", "success")
	after := testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "success"))

	assert.Equal(t, before+2, after)
}

func TestIncrementSlowQuery(t *testing.T) {
	before := testutil.ToFloat64(SlowQueryCount.WithLabelValues("SELECT"))
	IncrementSlowQuery("SELECT")
	assert.Equal(t, before+1, testutil.ToFloat64(SlowQueryCount.WithLabelValues("SELECT")))
}
