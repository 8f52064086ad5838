package safeclient

import (
	"context"
	"iter"
	"math"
	"net/url"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cast"

	"github.com/gnosis-tools/safeclient/types"
)

var decimalsFilterKeys = []string{"decimals", "decimals__gt", "decimals__lt"}

// TokenQuery is a filter builder for the service's token registry.
type TokenQuery struct {
	client  *Client
	filters map[string]string
}

// TokenQuery creates a filter builder for the token registry endpoint.
func (c *Client) TokenQuery() *TokenQuery {
	return &TokenQuery{
		client:  c,
		filters: make(map[string]string),
	}
}

// Tokens fetches the first page of the unfiltered token registry.
func (c *Client) Tokens(ctx context.Context) (types.Paginated[types.TokenInfoResponse], error) {
	return c.TokenQuery().Do(ctx)
}

// Name filters tokens by name.
func (q *TokenQuery) Name(name string) *TokenQuery {
	q.filters["name"] = name

	return q
}

// Symbol filters tokens by symbol.
func (q *TokenQuery) Symbol(symbol string) *TokenQuery {
	q.filters["symbol"] = symbol

	return q
}

// Address filters tokens by contract address.
func (q *TokenQuery) Address(address common.Address) *TokenQuery {
	q.filters["address"] = address.Hex()

	return q
}

// Decimals filters by exact decimals, clearing any min or max decimals
// filter.
func (q *TokenQuery) Decimals(decimals uint64) *TokenQuery {
	for _, k := range decimalsFilterKeys {
		delete(q.filters, k)
	}
	q.filters["decimals"] = cast.ToString(decimals)

	return q
}

// MinDecimals filters tokens with decimals >= min, clearing any exact
// decimals filter.
func (q *TokenQuery) MinDecimals(min uint64) *TokenQuery {
	delete(q.filters, "decimals")
	if min > 0 {
		min--
	}
	q.filters["decimals__gt"] = cast.ToString(min)

	return q
}

// MaxDecimals filters tokens with decimals <= max, clearing any exact
// decimals filter. The increment for the strict bound saturates at the top
// of the range instead of wrapping.
func (q *TokenQuery) MaxDecimals(max uint64) *TokenQuery {
	delete(q.filters, "decimals")
	if max < math.MaxUint64 {
		max++
	}
	q.filters["decimals__lt"] = cast.ToString(max)

	return q
}

// Limit specifies the page size.
func (q *TokenQuery) Limit(limit uint64) *TokenQuery {
	q.filters["limit"] = cast.ToString(limit)

	return q
}

// Offset specifies the results offset.
func (q *TokenQuery) Offset(offset uint64) *TokenQuery {
	q.filters["offset"] = cast.ToString(offset)

	return q
}

func (q *TokenQuery) values() url.Values {
	out := make(url.Values, len(q.filters))
	for k, v := range q.filters {
		out.Set(k, v)
	}

	return out
}

// Do fetches a single page of matching tokens.
func (q *TokenQuery) Do(ctx context.Context) (types.Paginated[types.TokenInfoResponse], error) {
	var out types.Paginated[types.TokenInfoResponse]
	err := q.client.getJSON(ctx, q.client.tokensURL(), q.values(), &out)

	return out, err
}

// All returns a lazy sequence of matching tokens, following the service's
// continuation links until exhausted. An error at any page ends the sequence
// with a non-nil error value.
func (q *TokenQuery) All(ctx context.Context) iter.Seq2[types.TokenInfoResponse, error] {
	return func(yield func(types.TokenInfoResponse, error) bool) {
		page, err := q.Do(ctx)
		if err != nil {
			yield(types.TokenInfoResponse{}, err)
			return
		}

		for {
			for _, result := range page.Results {
				if !yield(result, nil) {
					return
				}
			}

			if page.Next == nil || *page.Next == "" {
				return
			}

			next := *page.Next
			page = types.Paginated[types.TokenInfoResponse]{}
			if err := q.client.getJSON(ctx, next, nil, &page); err != nil {
				yield(types.TokenInfoResponse{}, err)
				return
			}
		}
	}
}
