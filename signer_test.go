package safeclient

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnosis-tools/safeclient/types"
)

// Well-known test key: private key 0x...01.
const testPrivateKeyHex = "0000000000000000000000000000000000000000000000000000000000000001"

// The address derived from the test key.
var testSignerAddress = common.HexToAddress("0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf")

func Test_PrivateKeySigner_Address(t *testing.T) {
	t.Parallel()

	pk, err := crypto.HexToECDSA(testPrivateKeyHex)
	require.NoError(t, err)

	addr, err := NewPrivateKeySigner(pk).Address()
	require.NoError(t, err)
	assert.Equal(t, testSignerAddress, addr)
}

func Test_PrivateKeySigner_Sign(t *testing.T) {
	t.Parallel()

	pk, err := crypto.HexToECDSA(testPrivateKeyHex)
	require.NoError(t, err)
	signer := NewPrivateKeySigner(pk)

	digest := crypto.Keccak256Hash([]byte("a fixed digest"))

	raw, err := signer.Sign(digest.Bytes())
	require.NoError(t, err)
	require.Len(t, raw, types.SignatureBytesLength)

	// Signing is deterministic: the same key and digest always produce the
	// same bytes.
	again, err := signer.Sign(digest.Bytes())
	require.NoError(t, err)
	assert.Equal(t, raw, again)

	sig, err := types.NewSignatureFromBytes(raw)
	require.NoError(t, err)

	recovered, err := sig.Recover(digest)
	require.NoError(t, err)
	assert.Equal(t, testSignerAddress, recovered)
}

func Test_SignTransaction(t *testing.T) {
	t.Parallel()

	pk, err := crypto.HexToECDSA(testPrivateKeyHex)
	require.NoError(t, err)

	client := NewSigningClient(Ethereum, NewPrivateKeySigner(pk))

	tx := testTx()

	sig, err := client.SignTransaction(tx, testSafe)
	require.NoError(t, err)
	assert.Equal(t, testSignerAddress, sig.Sender)
	assert.Contains(t, []uint8{27, 28}, sig.Signature.V, "recovery id must be Ethereum-style")

	digest, err := SafeTxHash(tx, testSafe, Ethereum.ChainID)
	require.NoError(t, err)

	// Golden vector for the fixed key, transaction, Safe and chain id.
	// RFC 6979 signing makes the exact bytes reproducible.
	assert.Equal(t,
		"0x062497efc8d8af4cc06be7b76fadfa850d0e3860ce163a3598069af617caf761",
		digest.Hex(),
	)
	assert.Equal(t,
		"0x60b2fa001a7e32201e65ed92060b6fc3628a22b6c6aa7d85356c527374696aa4"+
			"61dbf2e7963f4779a51f44be640e17b94436b164bfd2b0363b75313d9b76b54c"+
			"1b",
		hexutil.Encode(sig.Signature.ToBytes()),
	)

	recovered, err := sig.Signature.Recover(digest)
	require.NoError(t, err)
	assert.Equal(t, testSignerAddress, recovered)

	// Stable across calls.
	again, err := client.SignTransaction(tx, testSafe)
	require.NoError(t, err)
	assert.Equal(t, sig, again)
}
