package prometrics_test

import (
	"testing"

	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	reg := prometrics.New("minishop", "test")

	c := reg.Counter("usecase_requests_total", "help", "use_case", "outcome")
	c.Add(1, observability.L("use_case", "market.restock"), observability.L("outcome", "success"))
	// Asking again by name returns the already registered vector.
	reg.Counter("usecase_requests_total", "help", "use_case", "outcome").
		Add(2, observability.L("use_case", "market.restock"), observability.L("outcome", "success"))

	h := reg.Histogram("usecase_duration_seconds", "help", nil, "use_case")
	h.Observe(0.25, observability.L("use_case", "market.restock"))

	families, err := reg.Gatherer().Gather()
	require.NoError(t, err)

	got := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				got[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				got[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	require.Equal(t, 3.0, got["minishop_test_usecase_requests_total"])
	require.Equal(t, 1.0, got["minishop_test_usecase_duration_seconds"])
}
