// Package abi provides abi.encode / abi.decode equivalents over
// go-ethereum's accounts/abi package. The typed-data hashing pipeline needs
// plain tuple encoding, which geth only exposes through method packing.
package abi

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Encode ABI-encodes the given values as a tuple described by abiStr, a JSON
// array of type descriptors, e.g. `[{"type":"bytes32"},{"type":"uint256"}]`.
func Encode(abiStr string, values ...any) ([]byte, error) {
	// Wrap the tuple in a dummy method so the geth packer can be used, then
	// strip the 4-byte selector it prepends.
	inDef := fmt.Sprintf(`[{ "name" : "method", "type": "function", "inputs": %s}]`, abiStr)
	inAbi, err := abi.JSON(strings.NewReader(inDef))
	if err != nil {
		return nil, err
	}

	res, err := inAbi.Pack("method", values...)
	if err != nil {
		return nil, err
	}

	return res[4:], nil
}

// Decode is the inverse of Encode.
func Decode(abiStr string, data []byte) ([]any, error) {
	inDef := fmt.Sprintf(`[{ "name" : "method", "type": "function", "outputs": %s}]`, abiStr)
	inAbi, err := abi.JSON(strings.NewReader(inDef))
	if err != nil {
		return nil, err
	}

	return inAbi.Unpack("method", data)
}
