package market

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// LoadKeypair reads a Solana CLI keypair file: a JSON array of the 64 bytes
// of the expanded private key (32-byte seed followed by the 32-byte public
// key). Any failure is reported as a KeyLoadError before a key is returned.
func LoadKeypair(path string) (ed25519.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &KeyLoadError{Path: path, Cause: err}
	}

	// A keypair file is a JSON array of numbers, which encoding/json refuses
	// to decode into a []byte directly.
	var ints []int
	if err := json.Unmarshal(raw, &ints); err != nil {
		return nil, &KeyLoadError{Path: path, Cause: errors.Wrap(err, "not a JSON byte array")}
	}

	b := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, &KeyLoadError{Path: path, Cause: errors.Errorf("value out of byte range at index %d", i)}
		}
		b[i] = byte(v)
	}

	if len(b) != ed25519.PrivateKeySize {
		return nil, &KeyLoadError{Path: path, Cause: errors.Errorf("invalid key length: %d", len(b))}
	}

	priv := ed25519.PrivateKey(b)

	// The public half must be derivable from the seed, otherwise the file is
	// corrupt and any signature produced from it would be rejected.
	derived := ed25519.NewKeyFromSeed(b[:ed25519.SeedSize])
	if !bytes.Equal(derived.Public().(ed25519.PublicKey), b[ed25519.SeedSize:]) {
		return nil, &KeyLoadError{Path: path, Cause: errors.New("public key does not match seed")}
	}

	return priv, nil
}
