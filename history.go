package safeclient

import (
	"context"
	"iter"
	"math"
	"net/url"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/gnosis-tools/safeclient/types"
)

// Filter keys that are mutually exclusive with each other. Setting an exact
// match clears the range variants for the same field, and vice versa.
var (
	nonceFilterKeys = []string{"nonce", "nonce__gte", "nonce__lte"}

	// The service does not support value__gte / value__lte, only the strict
	// variants.
	valueFilterKeys = []string{"value", "value__gt", "value__lt"}
)

// HistoryQuery is a filter builder for multisig transaction history queries.
// The zero filter set matches everything.
type HistoryQuery struct {
	client  *Client
	filters map[string]string
}

// HistoryQuery creates a filter builder for the multisig transaction history
// endpoint.
func (c *Client) HistoryQuery() *HistoryQuery {
	return &HistoryQuery{
		client:  c,
		filters: make(map[string]string),
	}
}

// History fetches the first page of the Safe's unfiltered transaction
// history.
func (c *Client) History(ctx context.Context, safe common.Address) (types.Paginated[types.MultisigTxResponse], error) {
	return c.HistoryQuery().Do(ctx, safe)
}

func (q *HistoryQuery) clear(keys []string) {
	for _, k := range keys {
		delete(q.filters, k)
	}
}

// Nonce filters by exact nonce, clearing any min or max nonce filter.
func (q *HistoryQuery) Nonce(nonce uint64) *HistoryQuery {
	q.clear(nonceFilterKeys)
	q.filters["nonce"] = cast.ToString(nonce)

	return q
}

// MinNonce filters transactions with nonce >= min, clearing any exact nonce
// filter.
func (q *HistoryQuery) MinNonce(min uint64) *HistoryQuery {
	delete(q.filters, "nonce")
	q.filters["nonce__gte"] = cast.ToString(min)

	return q
}

// MaxNonce filters transactions with nonce <= max, clearing any exact nonce
// filter.
func (q *HistoryQuery) MaxNonce(max uint64) *HistoryQuery {
	delete(q.filters, "nonce")
	q.filters["nonce__lte"] = cast.ToString(max)

	return q
}

// Value filters by exact native value, clearing any min or max value filter.
func (q *HistoryQuery) Value(value uint64) *HistoryQuery {
	q.clear(valueFilterKeys)
	q.filters["value"] = cast.ToString(value)

	return q
}

// MinValue filters transactions with value >= min, clearing any exact value
// filter.
func (q *HistoryQuery) MinValue(min uint64) *HistoryQuery {
	delete(q.filters, "value")
	if min > 0 {
		min--
	}
	q.filters["value__gt"] = cast.ToString(min)

	return q
}

// MaxValue filters transactions with value <= max, clearing any exact value
// filter. The increment for the strict bound saturates at the top of the
// range instead of wrapping.
func (q *HistoryQuery) MaxValue(max uint64) *HistoryQuery {
	delete(q.filters, "value")
	if max < math.MaxUint64 {
		max++
	}
	q.filters["value__lt"] = cast.ToString(max)

	return q
}

// To filters by transaction target.
func (q *HistoryQuery) To(to common.Address) *HistoryQuery {
	q.filters["to"] = to.Hex()

	return q
}

// SafeTxHash filters by exact transaction digest.
func (q *HistoryQuery) SafeTxHash(hash common.Hash) *HistoryQuery {
	q.filters["safe_tx_hash"] = hash.Hex()

	return q
}

// TransactionHash filters by the executing on-chain transaction hash.
func (q *HistoryQuery) TransactionHash(hash common.Hash) *HistoryQuery {
	q.filters["transaction_hash"] = hash.Hex()

	return q
}

// Executed filters by execution status.
func (q *HistoryQuery) Executed(executed bool) *HistoryQuery {
	q.filters["executed"] = cast.ToString(executed)

	return q
}

// Trusted filters by the service's trusted flag.
func (q *HistoryQuery) Trusted(trusted bool) *HistoryQuery {
	q.filters["trusted"] = cast.ToString(trusted)

	return q
}

// Ordering specifies the results ordering, e.g. "nonce" or "-nonce".
func (q *HistoryQuery) Ordering(ordering string) *HistoryQuery {
	q.filters["ordering"] = ordering

	return q
}

// Limit specifies the page size. Responses larger than the limit are
// paginated.
func (q *HistoryQuery) Limit(limit uint64) *HistoryQuery {
	q.filters["limit"] = cast.ToString(limit)

	return q
}

// Offset specifies the results offset. The service manages this itself in
// pagination links; setting it manually is rarely needed.
func (q *HistoryQuery) Offset(offset uint64) *HistoryQuery {
	q.filters["offset"] = cast.ToString(offset)

	return q
}

func (q *HistoryQuery) values() url.Values {
	out := make(url.Values, len(q.filters))
	for k, v := range q.filters {
		out.Set(k, v)
	}

	return out
}

// Do fetches a single page of matching transactions.
func (q *HistoryQuery) Do(ctx context.Context, safe common.Address) (types.Paginated[types.MultisigTxResponse], error) {
	var out types.Paginated[types.MultisigTxResponse]
	err := q.client.getJSON(ctx, q.client.transactionsURL(safe), q.values(), &out)

	return out, err
}

// All returns a lazy sequence of matching transactions that transparently
// follows the service's continuation links, in page order then within-page
// order. The first page request is issued when the sequence is first
// consumed; each iteration of the sequence re-issues it.
//
// An error at any page ends the sequence with a non-nil error value; records
// already yielded remain valid.
func (q *HistoryQuery) All(ctx context.Context, safe common.Address) iter.Seq2[types.MultisigTxResponse, error] {
	return func(yield func(types.MultisigTxResponse, error) bool) {
		q.client.log.Debug("streaming multisig history", zap.Stringer("safe", safe))

		page, err := q.Do(ctx, safe)
		if err != nil {
			yield(types.MultisigTxResponse{}, err)
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

			// Continuation tokens are opaque: request the exact URL the
			// service handed back.
			next := *page.Next
			page = types.Paginated[types.MultisigTxResponse]{}
			if err := q.client.getJSON(ctx, next, nil, &page); err != nil {
				yield(types.MultisigTxResponse{}, err)
				return
			}
		}
	}
}

// NextNonce determines the next available nonce for a Safe by traversing its
// complete known transaction history and returning the highest observed nonce
// plus one, or zero when no transactions exist.
//
// The traversal follows every pagination link so the result reflects the full
// transaction set. Two concurrent proposals can still race on the same nonce;
// the service is the final arbiter.
func (c *Client) NextNonce(ctx context.Context, safe common.Address) (uint64, error) {
	var next uint64
	for tx, err := range c.HistoryQuery().All(ctx, safe) {
		if err != nil {
			return 0, err
		}

		if tx.Nonce+1 > next {
			next = tx.Nonce + 1
		}
	}

	return next, nil
}
