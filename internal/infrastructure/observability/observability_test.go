package observability_test

import (
	"testing"

	infraobs "github.com/Zhima-Mochi/minishop-market/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"
	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	t.Run("Nop_ReturnsUsableInstruments", func(t *testing.T) {
		tel := infraobs.Nop()
		require.NotNil(t, tel.Logger())
		require.NotNil(t, tel.Tracer())
		tel.Metrics().Counter(observability.MUsecaseRequests).Add(1)
		tel.Metrics().Histogram(observability.MUsecaseDuration).Observe(1)
	})

	t.Run("RegisteredMetrics_UnknownKeyFallsBackToNop", func(t *testing.T) {
		counters, histograms := infraobs.RegisterMetrics(prometrics.New("minishop", "provider_test"))
		tel := infraobs.New(infraobs.NewTracer(""), nil, counters, histograms)

		require.NotNil(t, tel.Metrics().Counter("does_not_exist"))
		tel.Metrics().Counter(observability.MSalesAmount).Add(12)
		tel.Metrics().Histogram(observability.MUsecaseDuration).Observe(0.1, observability.L("use_case", "x"))
	})
}
