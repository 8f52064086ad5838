package safeclient

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/gnosis-tools/safeclient/types"
)

// SigningClient is a transaction service client that can also sign and
// submit proposals. Reads are inherited from the embedded Client.
type SigningClient struct {
	*Client

	signer Signer

	// Append-only log of every proposal request built by this client, for
	// observability only. It is never consulted to decide protocol behavior.
	mu       sync.RWMutex
	proposed []types.ProposeRequest
}

// NewSigningClient creates a signing client for the given deployment.
func NewSigningClient(service TxService, signer Signer, opts ...Option) *SigningClient {
	return &SigningClient{
		Client: NewClient(service, opts...),
		signer: signer,
	}
}

// SigningClientByChainID creates a signing client for a known deployment by
// chain id.
func SigningClientByChainID(chainID uint64, signer Signer, opts ...Option) (*SigningClient, error) {
	service, err := ServiceByChainID(chainID)
	if err != nil {
		return nil, err
	}

	return NewSigningClient(service, signer, opts...), nil
}

// SignTransaction computes the transaction digest scoped to the given Safe
// and this client's chain, and obtains a signature over it from the signing
// capability.
//
// Signer failures are wrapped in *SigningError so callers can tell them
// apart from service errors. There are no retries: a signing failure is
// terminal for the attempt.
func (c *SigningClient) SignTransaction(tx types.SafeTransactionData, safe common.Address) (types.ProposeSignature, error) {
	digest, err := SafeTxHash(tx, safe, c.service.ChainID)
	if err != nil {
		return types.ProposeSignature{}, err
	}

	sender, err := c.signer.Address()
	if err != nil {
		return types.ProposeSignature{}, &SigningError{Err: err}
	}

	raw, err := c.signer.Sign(digest.Bytes())
	if err != nil {
		return types.ProposeSignature{}, &SigningError{Err: err}
	}

	sig, err := types.NewSignatureFromBytes(raw)
	if err != nil {
		return types.ProposeSignature{}, &SigningError{Err: err}
	}

	// The service expects Ethereum-style 27/28 recovery ids.
	if sig.V < types.SignatureVOffset {
		sig.V += types.SignatureVOffset
	}

	return types.ProposeSignature{Sender: sender, Signature: sig}, nil
}

// BuildProposeRequest hashes and signs a transaction and packages it into the
// wire request. The request is validated and recorded in the proposal log
// before any submission happens.
func (c *SigningClient) BuildProposeRequest(tx types.SafeTransactionData, safe common.Address) (types.ProposeRequest, error) {
	sig, err := c.SignTransaction(tx, safe)
	if err != nil {
		return types.ProposeRequest{}, err
	}

	digest, err := SafeTxHash(tx, safe, c.service.ChainID)
	if err != nil {
		return types.ProposeRequest{}, err
	}

	req := types.ProposeRequest{
		Tx:                      tx,
		ContractTransactionHash: digest,
		Signature:               sig,
	}
	if err := req.Validate(); err != nil {
		return types.ProposeRequest{}, err
	}

	c.mu.Lock()
	c.proposed = append(c.proposed, req)
	c.mu.Unlock()

	return req, nil
}

// SubmitProposal submits a signed proposal request for storage on the
// service, then fetches the canonical record back by its digest. The
// follow-up read is needed because a successful submission returns an empty
// body; it is also safe to retry on its own, being a pure read keyed by the
// deterministic hash.
func (c *SigningClient) SubmitProposal(ctx context.Context, safe common.Address, req types.ProposeRequest) (types.MultisigTxResponse, error) {
	if err := req.Validate(); err != nil {
		return types.MultisigTxResponse{}, err
	}

	available, err := c.signer.Address()
	if err != nil {
		return types.MultisigTxResponse{}, &SigningError{Err: err}
	}
	if req.Signature.Sender != available {
		return types.MultisigTxResponse{}, &WrongSignerError{Specified: req.Signature.Sender, Available: available}
	}

	if err := c.postJSON(ctx, c.transactionsURL(safe), req, nil); err != nil {
		return types.MultisigTxResponse{}, err
	}

	return c.Transaction(ctx, req.ContractTransactionHash)
}

// ProposeTransaction signs a complete transaction and submits it, returning
// the service's authoritative record, including any confirmations already
// attached by other owners.
func (c *SigningClient) ProposeTransaction(ctx context.Context, tx types.SafeTransactionData, safe common.Address) (types.MultisigTxResponse, error) {
	req, err := c.BuildProposeRequest(tx, safe)
	if err != nil {
		return types.MultisigTxResponse{}, err
	}

	c.log.Debug("submitting proposal",
		zap.Stringer("safe", safe),
		zap.Stringer("safe_tx_hash", req.ContractTransactionHash),
	)

	return c.SubmitProposal(ctx, safe, req)
}

// Propose proposes a bare call with zero gas accounting parameters. The next
// available nonce is fetched fresh from the service for every call, since
// concurrent submissions by other parties change the next available value.
// Callers needing strict sequencing of proposals for one Safe must serialize
// these calls themselves.
func (c *SigningClient) Propose(ctx context.Context, tx types.MetaTransactionData, safe common.Address) (types.MultisigTxResponse, error) {
	nonce, err := c.NextNonce(ctx, safe)
	if err != nil {
		return types.MultisigTxResponse{}, err
	}

	full := types.SafeTransactionData{
		MetaTransactionData: tx,
		Nonce:               nonce,
	}

	return c.ProposeTransaction(ctx, full, safe)
}

// Proposals returns a snapshot of every proposal request built by this
// client, in build order.
func (c *SigningClient) Proposals() []types.ProposeRequest {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]types.ProposeRequest, len(c.proposed))
	copy(out, c.proposed)

	return out
}
