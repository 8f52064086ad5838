package safeclient

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/usbwallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer is an opaque signing capability: it can sign a fixed-length digest
// and report its own address.
type Signer interface {
	Sign(digest []byte) ([]byte, error)
	Address() (common.Address, error)
}

var _ Signer = &PrivateKeySigner{}

// PrivateKeySigner signs digests with an in-memory private key.
type PrivateKeySigner struct {
	pk *ecdsa.PrivateKey
}

// NewPrivateKeySigner creates a new PrivateKeySigner.
func NewPrivateKeySigner(pk *ecdsa.PrivateKey) *PrivateKeySigner {
	return &PrivateKeySigner{pk: pk}
}

// Sign signs the raw digest. No prefix is applied; Safe transaction digests
// already carry the typed-data prefix bytes.
func (s *PrivateKeySigner) Sign(digest []byte) ([]byte, error) {
	return crypto.Sign(digest, s.pk)
}

// Address returns the address of the signing key.
func (s *PrivateKeySigner) Address() (common.Address, error) {
	return crypto.PubkeyToAddress(s.pk.PublicKey), nil
}

var _ Signer = &LedgerSigner{}

// LedgerSigner signs digests with the first wallet found on a Ledger.
type LedgerSigner struct {
	derivationPath accounts.DerivationPath
}

// NewLedgerSigner creates a new LedgerSigner.
func NewLedgerSigner(derivationPath accounts.DerivationPath) *LedgerSigner {
	return &LedgerSigner{derivationPath: derivationPath}
}

// Sign signs the digest on the device. A rejection on the device surfaces as
// an error; no retry is attempted.
func (s *LedgerSigner) Sign(digest []byte) ([]byte, error) {
	wallet, account, err := s.deriveAccount()
	if err != nil {
		return nil, err
	}
	defer wallet.Close()

	return wallet.SignData(account, accounts.MimetypeTypedData, digest)
}

// Address returns the address of the derived ledger account.
func (s *LedgerSigner) Address() (common.Address, error) {
	wallet, account, err := s.deriveAccount()
	if err != nil {
		return common.Address{}, err
	}
	defer wallet.Close()

	return account.Address, nil
}

// deriveAccount loads the wallet and account from the ledger. The caller is
// responsible for closing the wallet.
func (s *LedgerSigner) deriveAccount() (accounts.Wallet, accounts.Account, error) {
	ledgerhub, err := usbwallet.NewLedgerHub()
	if err != nil {
		return nil, accounts.Account{}, fmt.Errorf("failed to open ledger hub: %w", err)
	}

	wallets := ledgerhub.Wallets()
	if len(wallets) == 0 {
		return nil, accounts.Account{}, errors.New("no wallets found")
	}
	wallet := wallets[0]

	if err = wallet.Open(""); err != nil {
		return nil, accounts.Account{}, fmt.Errorf("failed to open wallet: %w", err)
	}

	account, err := wallet.Derive(s.derivationPath, true)
	if err != nil {
		wallet.Close()
		return nil, accounts.Account{}, fmt.Errorf("is the ledger ethereum app open? failed to derive account: %w (derivation path %v)", err, s.derivationPath)
	}

	return wallet, account, nil
}
