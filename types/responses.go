package types

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

// Paginated is the service's generic list envelope. Next and Previous are
// opaque continuation URLs owned entirely by the service; follow them
// verbatim rather than reconstructing query strings.
type Paginated[T any] struct {
	Count    uint64  `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// ErrorResponse is the structured error object returned by the service on a
// 422 response.
type ErrorResponse struct {
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	Arguments []json.RawMessage `json:"arguments"`
}

// String renders the code and message for log and error output.
func (e ErrorResponse) String() string {
	return fmt.Sprintf("code: %d, message: %q", e.Code, e.Message)
}

// SafeInfoResponse is the service's snapshot of a Safe's current on-chain
// state. The nonce can change between any two calls, so responses must never
// be cached.
type SafeInfoResponse struct {
	Address         common.Address   `json:"address"`
	Nonce           uint64           `json:"nonce"`
	Threshold       uint32           `json:"threshold"`
	Owners          []common.Address `json:"owners"`
	MasterCopy      common.Address   `json:"masterCopy"`
	Modules         []string         `json:"modules"`
	FallbackHandler common.Address   `json:"fallbackHandler"`
	Guard           common.Address   `json:"guard"`
	Version         string           `json:"version,omitempty"`
}

// ConfirmationResponse is one owner's signature attached to a proposed
// transaction.
type ConfirmationResponse struct {
	Owner           common.Address `json:"owner"`
	SubmissionDate  string         `json:"submissionDate"`
	TransactionHash *common.Hash   `json:"transactionHash"`
	Signature       string         `json:"signature"`
	SignatureType   string         `json:"signatureType"`
}

// DecodedParameter is a single decoded calldata argument.
type DecodedParameter struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// DecodedData is the service's decoding of a transaction's calldata.
type DecodedData struct {
	Method     string             `json:"method"`
	Parameters []DecodedParameter `json:"parameters"`
}

// MultisigTxResponse is the canonical record of a multisig transaction as
// tracked by the service, keyed by its EIP-712 digest. It is also the element
// type of history queries.
//
// Whether a proposal has gathered enough confirmations, or has already been
// executed, is read from IsExecuted, ConfirmationsRequired and Confirmations;
// the client draws no conclusions of its own from them.
type MultisigTxResponse struct {
	Safe                  common.Address         `json:"safe"`
	To                    common.Address         `json:"to"`
	Value                 BigInt                 `json:"value"`
	Data                  *hexutil.Bytes         `json:"data"`
	Operation             Operation              `json:"operation"`
	GasToken              common.Address         `json:"gasToken"`
	SafeTxGas             uint64                 `json:"safeTxGas"`
	BaseGas               uint64                 `json:"baseGas"`
	GasPrice              BigInt                 `json:"gasPrice"`
	RefundReceiver        *common.Address        `json:"refundReceiver"`
	Nonce                 uint64                 `json:"nonce"`
	ExecutionDate         *string                `json:"executionDate"`
	SubmissionDate        string                 `json:"submissionDate"`
	Modified              string                 `json:"modified"`
	BlockNumber           *uint64                `json:"blockNumber"`
	TransactionHash       *common.Hash           `json:"transactionHash"`
	SafeTxHash            common.Hash            `json:"safeTxHash"`
	Executor              *common.Address        `json:"executor"`
	IsExecuted            bool                   `json:"isExecuted"`
	IsSuccessful          *bool                  `json:"isSuccessful"`
	EthGasPrice           *BigInt                `json:"ethGasPrice"`
	MaxFeePerGas          *BigInt                `json:"maxFeePerGas"`
	MaxPriorityFeePerGas  *BigInt                `json:"maxPriorityFeePerGas"`
	GasUsed               *uint64                `json:"gasUsed"`
	Fee                   *BigInt                `json:"fee"`
	Origin                *string                `json:"origin"`
	DataDecoded           *DecodedData           `json:"dataDecoded"`
	ConfirmationsRequired *uint32                `json:"confirmationsRequired"`
	Confirmations         []ConfirmationResponse `json:"confirmations"`
	Trusted               bool                   `json:"trusted"`
	Signatures            *string                `json:"signatures"`
}

// TokenInfoResponse is one entry of the service's token registry.
type TokenInfoResponse struct {
	Type     string         `json:"type"`
	Address  common.Address `json:"address"`
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
	Decimals *uint32        `json:"decimals"`
	LogoURI  string         `json:"logoUri"`
}

// BalanceTokenInfo describes the token a balance entry refers to.
type BalanceTokenInfo struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint32 `json:"decimals"`
	LogoURI  string `json:"logoUri"`
}

// BalanceResponse is one entry of a Safe's balance view. TokenAddress and
// Token are nil for the native asset. Fiat amounts come over the wire as
// decimal strings.
type BalanceResponse struct {
	TokenAddress   *common.Address   `json:"tokenAddress"`
	Token          *BalanceTokenInfo `json:"token"`
	Balance        BigInt            `json:"balance"`
	EthValue       decimal.Decimal   `json:"ethValue"`
	Timestamp      string            `json:"timestamp"`
	FiatBalance    decimal.Decimal   `json:"fiatBalance"`
	FiatConversion decimal.Decimal   `json:"fiatConversion"`
	FiatCode       string            `json:"fiatCode"`
}

// EstimateResponse is the result of the gas estimation endpoint.
type EstimateResponse struct {
	SafeTxGas BigInt `json:"safeTxGas"`
}
