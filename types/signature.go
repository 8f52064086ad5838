package types

import (
	"crypto/ecdsa"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// SignatureBytesLength is the length of a recoverable signature in bytes:
	// 32 bytes R, 32 bytes S and a single recovery byte V.
	SignatureBytesLength = 65

	// SignatureComponentSize is the size of the R and S components in bytes.
	SignatureComponentSize = 32

	// SignatureVOffset is added to the raw recovery id to produce the
	// Ethereum-style 27/28 values the transaction service expects.
	SignatureVOffset = 27
)

// Signature is a 65-byte recoverable ECDSA signature in R-S-V form.
type Signature struct {
	R common.Hash
	S common.Hash
	V uint8
}

// NewSignatureFromBytes creates a Signature from a byte slice of concatenated
// R, S and V values.
func NewSignatureFromBytes(sig []byte) (Signature, error) {
	if len(sig) != SignatureBytesLength {
		return Signature{}, fmt.Errorf("invalid signature length: %d", len(sig))
	}

	return Signature{
		R: common.BytesToHash(sig[:SignatureComponentSize]),
		S: common.BytesToHash(sig[SignatureComponentSize:(SignatureBytesLength - 1)]),
		V: sig[SignatureBytesLength-1],
	}, nil
}

// ToBytes returns the r‖s‖v byte representation of the signature.
func (s Signature) ToBytes() []byte {
	return slices.Concat(
		s.R.Bytes(),
		s.S.Bytes(),
		[]byte{s.V},
	)
}

// Recover returns the address recovered from the signature and the digest it
// was produced over.
func (s Signature) Recover(digest common.Hash) (common.Address, error) {
	pubKey, err := s.RecoverPublicKey(digest)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}

// RecoverPublicKey returns the public key recovered from the signature and
// the digest it was produced over.
func (s Signature) RecoverPublicKey(digest common.Hash) (*ecdsa.PublicKey, error) {
	sig := s.ToBytes()

	// crypto.SigToPub expects a raw recovery id of 0 or 1, while signatures
	// on the wire carry 27 or 28.
	if sig[SignatureBytesLength-1] > 1 {
		sig[SignatureBytesLength-1] -= SignatureVOffset
	}

	return crypto.SigToPub(digest.Bytes(), sig)
}
