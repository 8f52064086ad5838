package types

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Operation is the call semantics requested for the target invocation.
type Operation uint8

const (
	// OperationCall is a standard CALL to the target.
	OperationCall Operation = 0

	// OperationDelegateCall executes the target's code in the Safe's own
	// storage context.
	OperationDelegateCall Operation = 1
)

// String returns the human readable name of the operation.
func (o Operation) String() string {
	if o == OperationDelegateCall {
		return "DELEGATECALL"
	}

	return "CALL"
}

// MarshalJSON encodes the operation as its numeric wire value.
func (o Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint8(o))
}

// UnmarshalJSON decodes the numeric wire value. Anything other than 1 is
// treated as a plain call.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var num uint8
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}

	if num == uint8(OperationDelegateCall) {
		*o = OperationDelegateCall
	} else {
		*o = OperationCall
	}

	return nil
}

// MetaTransactionData describes the on-chain call a Safe is being asked to
// perform: target, native value, calldata and call semantics.
//
// A nil Operation is equivalent to OperationCall. The defaulting happens when
// the transaction is encoded for hashing, never by mutating the stored value,
// so repeated encodes of the same value are idempotent.
type MetaTransactionData struct {
	To        common.Address `validate:"required"`
	Value     *big.Int
	Data      hexutil.Bytes
	Operation *Operation
}

// OperationOrDefault returns the operation, defaulting to OperationCall when
// unset.
func (m MetaTransactionData) OperationOrDefault() Operation {
	if m.Operation == nil {
		return OperationCall
	}

	return *m.Operation
}

// GasConfig carries the refund and execution accounting parameters of a Safe
// transaction. All fields default to zero / the zero address, which disables
// refunds entirely.
type GasConfig struct {
	SafeTxGas      uint64
	BaseGas        uint64
	GasPrice       *big.Int
	GasToken       common.Address
	RefundReceiver common.Address
}

// SafeTransactionData is the complete pre-image of a Safe transaction hash:
// the call payload, the gas accounting parameters and the Safe nonce.
//
// A value must not be modified after a hash or signature has been produced
// for it, or the signature becomes invalid.
type SafeTransactionData struct {
	MetaTransactionData
	GasConfig

	Nonce uint64
}
