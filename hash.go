package safeclient

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	abiutil "github.com/gnosis-tools/safeclient/internal/utils/abi"
	"github.com/gnosis-tools/safeclient/types"
)

var (
	// SafeTxTypehash is the EIP-712 typehash of a Safe transaction, as
	// defined in the Safe contracts:
	//
	//	keccak256("SafeTx(address to,uint256 value,bytes data,uint8 operation,uint256 safeTxGas,uint256 baseGas,uint256 gasPrice,address gasToken,address refundReceiver,uint256 nonce)")
	//	= 0xbb8310d486368db6bd6f849402fdd73ad53d316b5a4b2644ad6efe0f941286d8
	SafeTxTypehash = crypto.Keccak256Hash([]byte(
		"SafeTx(address to,uint256 value,bytes data,uint8 operation,uint256 safeTxGas,uint256 baseGas,uint256 gasPrice,address gasToken,address refundReceiver,uint256 nonce)",
	))

	// DomainTypehash is the EIP-712 typehash of the domain binding a
	// signature to a chain id and verifying contract:
	//
	//	keccak256("EIP712Domain(uint256 chainId,address verifyingContract)")
	//	= 0x47e79534a245952e8b16893a336b85a3d9ea9fa8c573f3d803afb92a79469218
	DomainTypehash = crypto.Keccak256Hash([]byte(
		"EIP712Domain(uint256 chainId,address verifyingContract)",
	))
)

const (
	safeTxTupleABI = `[{"type":"bytes32"},{"type":"address"},{"type":"uint256"},{"type":"bytes32"},{"type":"uint8"},{"type":"uint256"},{"type":"uint256"},{"type":"uint256"},{"type":"address"},{"type":"address"},{"type":"uint256"}]`
	domainTupleABI = `[{"type":"bytes32"},{"type":"uint256"},{"type":"address"}]`
)

// EncodeSafeTx produces the canonical struct-hash pre-image of a transaction:
// the fixed-order ABI tuple of the typehash and every transaction field.
//
// The calldata appears as keccak(data); absent data hashes as the empty byte
// string, not as zero bytes. A nil operation encodes as a plain call. The
// encoding is pure: repeated calls on the same value yield identical bytes.
func EncodeSafeTx(tx types.SafeTransactionData) ([]byte, error) {
	value := tx.Value
	if value == nil {
		value = new(big.Int)
	}

	gasPrice := tx.GasPrice
	if gasPrice == nil {
		gasPrice = new(big.Int)
	}

	return abiutil.Encode(safeTxTupleABI,
		SafeTxTypehash,
		tx.To,
		value,
		crypto.Keccak256Hash(tx.Data),
		uint8(tx.OperationOrDefault()),
		new(big.Int).SetUint64(tx.SafeTxGas),
		new(big.Int).SetUint64(tx.BaseGas),
		gasPrice,
		tx.GasToken,
		tx.RefundReceiver,
		new(big.Int).SetUint64(tx.Nonce),
	)
}

// StructHash is the keccak256 hash of the canonical transaction encoding.
func StructHash(tx types.SafeTransactionData) (common.Hash, error) {
	encoded, err := EncodeSafeTx(tx)
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Keccak256Hash(encoded), nil
}

// DomainSeparator commits a signature to a specific chain id and verifying
// Safe contract, so it cannot be replayed elsewhere.
func DomainSeparator(chainID uint64, verifyingContract common.Address) (common.Hash, error) {
	encoded, err := abiutil.Encode(domainTupleABI,
		DomainTypehash,
		new(big.Int).SetUint64(chainID),
		verifyingContract,
	)
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Keccak256Hash(encoded), nil
}

// SafeTxHash computes the 32-byte digest that is signed and serves as the
// canonical, chain- and contract-scoped transaction identifier:
//
//	keccak256(0x19 ‖ 0x01 ‖ domainSeparator ‖ structHash)
//
// The two literal prefix bytes are the typed-data signing convention and are
// not part of either sub-hash. The digest is recomputed from scratch on every
// call; it is never cached.
func SafeTxHash(tx types.SafeTransactionData, safe common.Address, chainID uint64) (common.Hash, error) {
	domainSeparator, err := DomainSeparator(chainID, safe)
	if err != nil {
		return common.Hash{}, err
	}

	structHash, err := StructHash(tx)
	if err != nil {
		return common.Hash{}, err
	}

	preimage := make([]byte, 0, 2+2*common.HashLength)
	preimage = append(preimage, 0x19, 0x01)
	preimage = append(preimage, domainSeparator.Bytes()...)
	preimage = append(preimage, structHash.Bytes()...)

	return crypto.Keccak256Hash(preimage), nil
}
