package gpg

import (
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Signer produces detached ASCII-armored signatures for report files
type Signer struct {
	entity *openpgp.Entity
}

// NewSignerFromFile loads the first private key in keyPath. Encrypted keys are
// unlocked with passphrase.
func NewSignerFromFile(keyPath string, passphrase []byte) (*Signer, error) {
	keys, err := readKeyFile(keyPath)
	if err != nil {
		return nil, err
	}

	entity := keys[0]
	if entity.PrivateKey == nil {
		return nil, fmt.Errorf("key %s contains no private key", keyPath)
	}

	if err := unlock(entity, passphrase); err != nil {
		return nil, err
	}

	return &Signer{entity: entity}, nil
}

// NewSigner wraps an already unlocked entity
func NewSigner(entity *openpgp.Entity) *Signer {
	return &Signer{entity: entity}
}

// SignFile writes a detached armored signature of filePath to sigPath
func (s *Signer) SignFile(filePath, sigPath string) error {
	//nolint:gosec // G304: filePath is the report just written
	data, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer data.Close()

	//nolint:gosec // G304: sigPath is derived from the report path
	out, err := os.Create(sigPath)
	if err != nil {
		return fmt.Errorf("failed to create signature file: %w", err)
	}

	if err := openpgp.ArmoredDetachSign(out, s.entity, data, nil); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to sign %s: %w", filePath, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close signature file: %w", err)
	}

	return nil
}

func unlock(entity *openpgp.Entity, passphrase []byte) error {
	if entity.PrivateKey.Encrypted {
		if len(passphrase) == 0 {
			return fmt.Errorf("private key is encrypted and no passphrase was given")
		}
		if err := entity.PrivateKey.Decrypt(passphrase); err != nil {
			return fmt.Errorf("failed to decrypt private key: %w", err)
		}
	}
	for _, sub := range entity.Subkeys {
		if sub.PrivateKey != nil && sub.PrivateKey.Encrypted {
			if err := sub.PrivateKey.Decrypt(passphrase); err != nil {
				return fmt.Errorf("failed to decrypt subkey: %w", err)
			}
		}
	}
	return nil
}
