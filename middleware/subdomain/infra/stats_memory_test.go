package infra

import (
	"context"
	"testing"

	"subdomain-gateway/middleware/subdomain/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStatsStore_CountsByOutcome(t *testing.T) {
	s := NewMemoryStatsStore(WithTrackSubdomains(true))
	ctx := context.Background()

	events := []domain.DispatchEvent{
		{Subdomain: "billing", Handler: "billing.invoices", Matched: true},
		{Subdomain: "billing", Handler: "billing.invoices", Matched: true},
		{Subdomain: "unknown", Handler: domain.NotFoundHandler},
		{Subdomain: "", Handler: domain.NotFoundHandler},
		{Subdomain: "billing", Handler: "billing.invoices", Matched: true, Throttled: true},
	}
	for _, ev := range events {
		require.NoError(t, s.Record(ctx, ev))
	}

	assert.Equal(t, Counters{Matched: 2, NotFound: 2, Throttled: 1}, s.Total())
	assert.Equal(t, Counters{Matched: 2, Throttled: 1}, s.ByHandler()["billing.invoices"])
	assert.Equal(t, Counters{NotFound: 2}, s.ByHandler()[domain.NotFoundHandler])

	subs := s.BySubdomain()
	assert.Equal(t, Counters{NotFound: 1}, subs["@"])
	assert.Equal(t, Counters{Matched: 2, Throttled: 1}, subs["billing"])
}

func TestMemoryStatsStore_SubdomainsNotTrackedByDefault(t *testing.T) {
	s := NewMemoryStatsStore()
	require.NoError(t, s.Record(context.Background(), domain.DispatchEvent{Subdomain: "acme", Matched: true, Handler: "x"}))

	assert.Empty(t, s.BySubdomain())
	assert.Equal(t, int64(1), s.Total().Matched)
}
