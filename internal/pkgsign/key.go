package pkgsign

import (
	"bytes"
	"errors"
	"os"

	"github.com/pkgerio/pkger/internal/pkgerr"
	"golang.org/x/crypto/openpgp"
	"golang.org/x/crypto/openpgp/armor"
)

var ErrSign = errors.New("sign error")

// Key is a GPG signing key loaded from disk. Name is read off the key's
// own primary identity rather than configured separately, since that's
// what dpkg-sig/rpm --addsign need to match against.
type Key struct {
	Path       string
	Passphrase string
	Name       string

	raw []byte
}

// LoadKey reads and parses an armored GPG private key, extracting its
// primary identity's name for use in sign commands.
func LoadKey(path, passphrase string) (*Key, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerr.Wrap(ErrSign, err)
	}

	block, err := armor.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, pkgerr.Wrap(ErrSign, err)
	}

	entities, err := openpgp.ReadKeyRing(block.Body)
	if err != nil {
		return nil, pkgerr.Wrap(ErrSign, err)
	}
	if len(entities) == 0 {
		return nil, pkgerr.Wrapf(ErrSign, "key %s carries no entities", path)
	}

	var name string
	for _, id := range entities[0].Identities {
		primary := id.SelfSignature != nil && id.SelfSignature.IsPrimaryId != nil && *id.SelfSignature.IsPrimaryId
		if name == "" || primary {
			name = id.UserId.Name
		}
		if primary {
			break
		}
	}
	if name == "" {
		return nil, pkgerr.Wrapf(ErrSign, "key %s carries no identity", path)
	}

	return &Key{Path: path, Passphrase: passphrase, Name: name, raw: raw}, nil
}
