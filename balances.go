package safeclient

import (
	"context"
	"net/url"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cast"

	"github.com/gnosis-tools/safeclient/types"
)

// BalancesQuery is a filter builder for a Safe's balance view.
type BalancesQuery struct {
	client  *Client
	filters map[string]string
}

// BalancesQuery creates a filter builder for the balances endpoint.
func (c *Client) BalancesQuery() *BalancesQuery {
	return &BalancesQuery{
		client:  c,
		filters: make(map[string]string),
	}
}

// Balances fetches the Safe's unfiltered balance view, with fiat values in
// USD.
func (c *Client) Balances(ctx context.Context, safe common.Address) ([]types.BalanceResponse, error) {
	return c.BalancesQuery().Do(ctx, safe)
}

// Trusted restricts results to tokens the service marks as trusted.
func (q *BalancesQuery) Trusted(trusted bool) *BalancesQuery {
	q.filters["trusted"] = cast.ToString(trusted)

	return q
}

// ExcludeSpam drops tokens the service marks as spam.
func (q *BalancesQuery) ExcludeSpam(exclude bool) *BalancesQuery {
	q.filters["exclude_spam"] = cast.ToString(exclude)

	return q
}

// Do fetches the matching balance entries. The endpoint is not paginated.
func (q *BalancesQuery) Do(ctx context.Context, safe common.Address) ([]types.BalanceResponse, error) {
	query := make(url.Values, len(q.filters))
	for k, v := range q.filters {
		query.Set(k, v)
	}

	var out []types.BalanceResponse
	err := q.client.getJSON(ctx, q.client.balancesURL(safe), query, &out)

	return out, err
}
