package safeclient

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/gnosis-tools/safeclient/types"
)

// estimateRequest is the wire form of a gas estimation request. Unlike
// proposals, the estimation endpoint takes the native value as a plain
// number and requires a data field even when empty.
type estimateRequest struct {
	To        string `json:"to"`
	Value     uint64 `json:"value"`
	Data      string `json:"data"`
	Operation uint8  `json:"operation"`
}

func newEstimateRequest(tx types.MetaTransactionData) estimateRequest {
	var value uint64
	if tx.Value != nil {
		value = tx.Value.Uint64()
	}

	return estimateRequest{
		To:        tx.To.Hex(),
		Value:     value,
		Data:      hexutil.Encode(tx.Data),
		Operation: uint8(tx.OperationOrDefault()),
	}
}

// EstimateSafeTxGas asks the service to estimate the safeTxGas to attach to
// a candidate transaction.
func (c *Client) EstimateSafeTxGas(ctx context.Context, safe common.Address, tx types.MetaTransactionData) (*big.Int, error) {
	req := newEstimateRequest(tx)

	var out types.EstimateResponse
	if err := c.postJSON(ctx, c.estimationsURL(safe), req, &out); err != nil {
		return nil, err
	}

	return new(big.Int).Set(&out.SafeTxGas.Int), nil
}
