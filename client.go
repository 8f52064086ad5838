// Package safeclient is a client library for the Safe transaction service:
// it builds, hashes, signs and submits multisig transaction proposals, and
// reads the service's transaction history, token registry and balance views.
package safeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/gnosis-tools/safeclient/types"
)

// Client is a read-only transaction service client. Use SigningClient to
// propose transactions.
type Client struct {
	service TxService
	http    *resty.Client
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default resty client, e.g. to set timeouts,
// retries or a custom transport.
func WithHTTPClient(http *resty.Client) Option {
	return func(c *Client) {
		c.http = http
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a client for the given transaction service deployment.
func NewClient(service TxService, opts ...Option) *Client {
	c := &Client{
		service: service,
		http:    resty.New(),
		log:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ClientByChainID creates a client for a known deployment by chain id.
func ClientByChainID(chainID uint64, opts ...Option) (*Client, error) {
	service, err := ServiceByChainID(chainID)
	if err != nil {
		return nil, err
	}

	return NewClient(service, opts...), nil
}

// Service returns the deployment this client talks to.
func (c *Client) Service() TxService {
	return c.service
}

// SafeInfo fetches the service's snapshot of the Safe's current on-chain
// state. It is fetched fresh on every call; the nonce can change between any
// two calls, so the result must not be cached.
func (c *Client) SafeInfo(ctx context.Context, safe common.Address) (types.SafeInfoResponse, error) {
	var out types.SafeInfoResponse
	err := c.getJSON(ctx, c.safeURL(safe), nil, &out)

	return out, err
}

// Transaction fetches the canonical record of a single multisig transaction
// by its digest. Errors on unknown transactions.
func (c *Client) Transaction(ctx context.Context, safeTxHash common.Hash) (types.MultisigTxResponse, error) {
	var out types.MultisigTxResponse
	err := c.getJSON(ctx, c.transactionURL(safeTxHash), nil, &out)

	return out, err
}

// URL construction. Addresses are rendered EIP-55 checksummed in paths.

func (c *Client) rootURL() string {
	return strings.TrimRight(c.service.URL, "/")
}

func (c *Client) safeURL(safe common.Address) string {
	return fmt.Sprintf("%s/v1/safes/%s/", c.rootURL(), safe.Hex())
}

func (c *Client) transactionsURL(safe common.Address) string {
	return fmt.Sprintf("%s/v1/safes/%s/multisig-transactions/", c.rootURL(), safe.Hex())
}

func (c *Client) transactionURL(safeTxHash common.Hash) string {
	return fmt.Sprintf("%s/v1/multisig-transactions/%s/", c.rootURL(), safeTxHash.Hex())
}

func (c *Client) estimationsURL(safe common.Address) string {
	return fmt.Sprintf("%s/v1/safes/%s/multisig-transactions/estimations/", c.rootURL(), safe.Hex())
}

func (c *Client) tokensURL() string {
	return fmt.Sprintf("%s/v1/tokens/", c.rootURL())
}

func (c *Client) balancesURL(safe common.Address) string {
	return fmt.Sprintf("%s/v1/safes/%s/balances/usd/", c.rootURL(), safe.Hex())
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, query url.Values, out any) error {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	c.log.Debug("dispatching api request", zap.String("method", http.MethodGet), zap.String("url", rawURL))

	resp, err := req.Get(rawURL)
	if err != nil {
		return fmt.Errorf("dispatching GET %s: %w", rawURL, err)
	}

	return c.handleResponse(http.MethodGet, rawURL, resp, out)
}

// postJSON issues a POST with a JSON body and decodes the response into out.
// A nil out permits (and expects) an empty success body.
func (c *Client) postJSON(ctx context.Context, rawURL string, body, out any) error {
	c.log.Debug("dispatching api request", zap.String("method", http.MethodPost), zap.String("url", rawURL))

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(rawURL)
	if err != nil {
		return fmt.Errorf("dispatching POST %s: %w", rawURL, err)
	}

	return c.handleResponse(http.MethodPost, rawURL, resp, out)
}

// handleResponse maps a service response onto the error taxonomy: 422 with a
// structured body becomes an APIError, any other error status a ServerError,
// and an undecodable body a DecodeError logged together with the raw payload.
func (c *Client) handleResponse(method, rawURL string, resp *resty.Response, out any) error {
	body := resp.Body()

	switch status := resp.StatusCode(); {
	case status == http.StatusUnprocessableEntity:
		var errResp types.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			c.warnUnexpected(method, rawURL, body)
			return &DecodeError{Body: string(body), Err: err}
		}

		return newAPIError(errResp)

	case status >= http.StatusBadRequest:
		return &ServerError{Status: status}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.warnUnexpected(method, rawURL, body)
		return &DecodeError{Body: string(body), Err: err}
	}

	return nil
}

func (c *Client) warnUnexpected(method, rawURL string, body []byte) {
	c.log.Warn("unexpected response from server",
		zap.String("method", method),
		zap.String("url", rawURL),
		zap.ByteString("response", body),
	)
}
