package safeclient

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TokenQuery_Do(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tokens/", r.URL.Path)
		assert.Equal(t, "DAI", r.URL.Query().Get("symbol"))
		assert.Equal(t, "18", r.URL.Query().Get("decimals"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 1,
			"next": null,
			"previous": null,
			"results": [{
				"type": "ERC20",
				"address": "0x6B175474E89094C44Da98b954EedeAC495271d0F",
				"name": "Dai Stablecoin",
				"symbol": "DAI",
				"decimals": 18,
				"logoUri": ""
			}]
		}`))
	}))

	page, err := client.TokenQuery().Symbol("DAI").Decimals(18).Do(context.Background())
	require.NoError(t, err)

	require.Len(t, page.Results, 1)
	token := page.Results[0]
	assert.Equal(t, common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"), token.Address)
	assert.Equal(t, "Dai Stablecoin", token.Name)
	require.NotNil(t, token.Decimals)
	assert.Equal(t, uint32(18), *token.Decimals)
}

func Test_TokenQuery_DecimalsExclusion(t *testing.T) {
	t.Parallel()

	client := NewClient(Ethereum)

	t.Run("exact clears range", func(t *testing.T) {
		t.Parallel()

		q := client.TokenQuery().MinDecimals(6).MaxDecimals(18).Decimals(18)
		assert.Equal(t, map[string]string{"decimals": "18"}, q.filters)
	})

	t.Run("range clears exact", func(t *testing.T) {
		t.Parallel()

		q := client.TokenQuery().Decimals(18).MinDecimals(6)
		assert.Equal(t, map[string]string{"decimals__gt": "5"}, q.filters)
	})

	t.Run("max is inclusive", func(t *testing.T) {
		t.Parallel()

		q := client.TokenQuery().MaxDecimals(18)
		assert.Equal(t, map[string]string{"decimals__lt": "19"}, q.filters)
	})

	t.Run("min zero does not underflow", func(t *testing.T) {
		t.Parallel()

		q := client.TokenQuery().MinDecimals(0)
		assert.Equal(t, map[string]string{"decimals__gt": "0"}, q.filters)
	})

	t.Run("max saturates at the top of the range", func(t *testing.T) {
		t.Parallel()

		q := client.TokenQuery().MaxDecimals(math.MaxUint64)
		assert.Equal(t, map[string]string{"decimals__lt": "18446744073709551615"}, q.filters)
	})
}

func Test_TokenQuery_All(t *testing.T) {
	t.Parallel()

	tokenRecord := func(i int) string {
		return fmt.Sprintf(`{
			"type": "ERC20",
			"address": "0x%040d",
			"name": "Token %d",
			"symbol": "TK%d",
			"decimals": 18,
			"logoUri": ""
		}`, i+1, i, i)
	}

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Query().Get("offset") {
		case "":
			fmt.Fprintf(w, `{"count": 3, "next": "http://%s/v1/tokens/?offset=2", "previous": null, "results": [%s, %s]}`,
				r.Host, tokenRecord(0), tokenRecord(1))
		case "2":
			fmt.Fprintf(w, `{"count": 3, "next": null, "previous": null, "results": [%s]}`, tokenRecord(2))
		default:
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
	}))

	var symbols []string
	for token, err := range client.TokenQuery().All(context.Background()) {
		require.NoError(t, err)
		symbols = append(symbols, token.Symbol)
	}

	assert.Equal(t, []string{"TK0", "TK1", "TK2"}, symbols)
}
