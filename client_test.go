package safeclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(TxService{URL: srv.URL, ChainID: 1}), srv
}

func Test_SafeInfo(t *testing.T) {
	t.Parallel()

	safe := common.HexToAddress("0x5afe5afe5afe5afe5afe5afe5afe5afe5afe5afe")

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/safes/"+safe.Hex()+"/", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"address": "` + safe.Hex() + `",
			"nonce": 12,
			"threshold": 2,
			"owners": ["0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"],
			"masterCopy": "0xd9Db270c1B5E3Bd161E8c8503c55cEABeE709552",
			"modules": [],
			"fallbackHandler": "0x0000000000000000000000000000000000000000",
			"guard": "0x0000000000000000000000000000000000000000",
			"version": "1.3.0"
		}`))
	}))

	info, err := client.SafeInfo(context.Background(), safe)
	require.NoError(t, err)

	assert.Equal(t, safe, info.Address)
	assert.Equal(t, uint64(12), info.Nonce)
	assert.Equal(t, uint32(2), info.Threshold)
	require.Len(t, info.Owners, 1)
	assert.Equal(t, "1.3.0", info.Version)
}

func Test_APIError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"code":1,"message":"bad nonce","arguments":[]}`))
	}))

	_, err := client.SafeInfo(context.Background(), testSafe)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr, "a structured 422 must surface as an APIError")
	assert.Equal(t, 1, apiErr.Code)
	assert.Equal(t, "bad nonce", apiErr.Message)
}

func Test_ServerError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
	}{
		{name: "not found", status: http.StatusNotFound},
		{name: "internal error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := client.SafeInfo(context.Background(), testSafe)
			require.Error(t, err)

			var srvErr *ServerError
			require.ErrorAs(t, err, &srvErr)
			assert.Equal(t, tt.status, srvErr.Status)
		})
	}
}

func Test_DecodeError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`hello world`))
	}))

	_, err := client.SafeInfo(context.Background(), testSafe)
	require.Error(t, err)

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "hello world", decErr.Body)
}

func Test_TransportError(t *testing.T) {
	t.Parallel()

	// A closed server yields a connection error, which must surface as a
	// plain transport failure rather than any of the typed variants.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(TxService{URL: srv.URL, ChainID: 1})

	_, err := client.SafeInfo(context.Background(), testSafe)
	require.Error(t, err)

	var apiErr *APIError
	var srvErr *ServerError
	assert.False(t, errors.As(err, &apiErr))
	assert.False(t, errors.As(err, &srvErr))
}

func Test_ClientByChainID(t *testing.T) {
	t.Parallel()

	client, err := ClientByChainID(1)
	require.NoError(t, err)
	assert.Equal(t, Ethereum, client.Service())

	_, err = ClientByChainID(999999)
	var unknownErr *UnknownServiceError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, uint64(999999), unknownErr.ChainID)
}
