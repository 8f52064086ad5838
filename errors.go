package safeclient

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gnosis-tools/safeclient/types"
)

// APIError is a structured error reported by the transaction service on a
// 422 response, carrying the service's own error code and arguments.
type APIError struct {
	Code      int
	Message   string
	Arguments []json.RawMessage
}

func newAPIError(resp types.ErrorResponse) *APIError {
	return &APIError{Code: resp.Code, Message: resp.Message, Arguments: resp.Arguments}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("transaction service error (code %d): %s", e.Code, e.Message)
}

// ServerError is returned for any error status the service does not pair
// with a structured error body.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned status %d", e.Status)
}

// DecodeError is returned when a response body cannot be decoded into the
// expected shape. The offending body is carried for diagnosis but is not
// exposed as structured data.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnknownServiceError is returned when no transaction service endpoint is
// known for a chain id. Custom deployments should be addressed with an
// explicit TxService instead of a chain id lookup.
type UnknownServiceError struct {
	ChainID uint64
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("no known transaction service for chain id %d", e.ChainID)
}

// WrongSignerError is returned when a proposal names a sender other than the
// signing capability the client holds.
type WrongSignerError struct {
	Specified common.Address
	Available common.Address
}

func (e *WrongSignerError) Error() string {
	return fmt.Sprintf("wrong signer: request specified %s, client has %s", e.Specified, e.Available)
}

// SigningError wraps a failure of the signing capability itself, such as a
// hardware rejection or user cancellation. It is a separate channel from
// transport and service errors so callers can tell "user declined to sign"
// apart from "service unreachable".
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signer: %v", e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}
