package types

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"
)

// ProposeSignature is a signature over a transaction digest together with the
// signer's address and an optional free-text provenance tag.
type ProposeSignature struct {
	Sender    common.Address `validate:"required"`
	Signature Signature
	Origin    string
}

// ProposeRequest is the wire representation of a transaction proposal: the
// full transaction pre-image, its EIP-712 digest and the proposer's
// signature.
//
// ContractTransactionHash must equal the digest of the embedded transaction;
// the service recomputes it and rejects mismatches.
type ProposeRequest struct {
	Tx                      SafeTransactionData
	ContractTransactionHash common.Hash `validate:"required"`
	Signature               ProposeSignature
}

var validate = validator.New()

// Validate checks the request's protocol preconditions: a destination
// address, a digest and a sender must all be present.
func (r ProposeRequest) Validate() error {
	return validate.Struct(r)
}

// proposeRequestJSON is the flattened wire form of a ProposeRequest.
// Addresses are EIP-55 checksummed, uint256 values are decimal strings and
// byte strings are 0x-prefixed hex, per the service's conventions.
type proposeRequestJSON struct {
	To                      string  `json:"to"`
	Value                   string  `json:"value"`
	Data                    *string `json:"data"`
	Operation               uint8   `json:"operation"`
	SafeTxGas               uint64  `json:"safeTxGas"`
	BaseGas                 uint64  `json:"baseGas"`
	GasPrice                string  `json:"gasPrice"`
	GasToken                string  `json:"gasToken"`
	RefundReceiver          string  `json:"refundReceiver"`
	Nonce                   uint64  `json:"nonce"`
	ContractTransactionHash string  `json:"contractTransactionHash"`
	Sender                  string  `json:"sender"`
	Signature               string  `json:"signature"`
	Origin                  string  `json:"origin,omitempty"`
}

// MarshalJSON flattens the request into the service's wire form.
func (r ProposeRequest) MarshalJSON() ([]byte, error) {
	value := "0"
	if r.Tx.Value != nil {
		value = r.Tx.Value.String()
	}

	gasPrice := "0"
	if r.Tx.GasPrice != nil {
		gasPrice = r.Tx.GasPrice.String()
	}

	var data *string
	if len(r.Tx.Data) > 0 {
		enc := hexutil.Encode(r.Tx.Data)
		data = &enc
	}

	return json.Marshal(proposeRequestJSON{
		To:                      r.Tx.To.Hex(),
		Value:                   value,
		Data:                    data,
		Operation:               uint8(r.Tx.OperationOrDefault()),
		SafeTxGas:               r.Tx.SafeTxGas,
		BaseGas:                 r.Tx.BaseGas,
		GasPrice:                gasPrice,
		GasToken:                r.Tx.GasToken.Hex(),
		RefundReceiver:          r.Tx.RefundReceiver.Hex(),
		Nonce:                   r.Tx.Nonce,
		ContractTransactionHash: r.ContractTransactionHash.Hex(),
		Sender:                  r.Signature.Sender.Hex(),
		Signature:               hexutil.Encode(r.Signature.Signature.ToBytes()),
		Origin:                  r.Signature.Origin,
	})
}
