package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BigInt_JSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		give      string
		want      string
		wantError bool
	}{
		{name: "decimal string", give: `"1000000000000000000000000"`, want: "1000000000000000000000000"},
		{name: "zero string", give: `"0"`, want: "0"},
		{name: "raw number", give: `42`, want: "42"},
		{name: "null is zero", give: `null`, want: "0"},
		{name: "failure: hex string", give: `"0xff"`, wantError: true},
		{name: "failure: not a number", give: `"abc"`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got BigInt
			err := json.Unmarshal([]byte(tt.give), &got)

			if tt.wantError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func Test_BigInt_Marshal(t *testing.T) {
	t.Parallel()

	value, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	raw, err := json.Marshal(NewBigInt(value))
	require.NoError(t, err)
	assert.Equal(t, `"123456789012345678901234567890"`, string(raw),
		"large integers must cross the wire as decimal text")
}
