package types

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// BigInt is a big.Int that crosses the wire as a base-10 JSON string.
//
// The transaction service treats uint256 fields (value, gasPrice, balances)
// as decimal text. Encoding them as raw JSON numbers would risk precision
// loss in consumers that parse numbers as floats, so the service refuses
// them.
type BigInt struct {
	big.Int
}

// NewBigInt creates a BigInt from a big.Int. A nil input yields zero.
func NewBigInt(i *big.Int) BigInt {
	var out BigInt
	if i != nil {
		out.Set(i)
	}

	return out
}

// MarshalJSON encodes the integer as a decimal string.
func (i BigInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON decodes a decimal string, falling back to a raw JSON number
// for endpoints that serve small values numerically. JSON null is zero.
func (i *BigInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		i.SetInt64(0)
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		if _, ok := i.SetString(s, 10); !ok {
			return fmt.Errorf("invalid decimal integer: %q", s)
		}

		return nil
	}

	return i.Int.UnmarshalJSON(data)
}
