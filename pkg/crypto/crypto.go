package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip19"
)

// KeyPair holds all forms of the relay signing key.
type KeyPair struct {
	PrivateKeyHex    string // Hex-encoded private key
	PrivateKeyBech32 string // Bech32-encoded private key (nsec)
	PublicKeyHex     string // Hex-encoded public key
	PublicKeyBech32  string // Bech32-encoded public key (npub)
}

// DeriveKeyPair derives all forms of the keys from a private key given
// in hex or nsec format.
func DeriveKeyPair(secretKey string) (*KeyPair, error) {
	var skHex string

	// A 64-character hex string is taken as a raw private key.
	if len(secretKey) == 64 {
		if _, err := hex.DecodeString(secretKey); err == nil {
			skHex = secretKey
		} else {
			return nil, fmt.Errorf("secret key is not a valid hex private key")
		}
	} else {
		prefix, sk, err := nip19.Decode(secretKey)
		if err != nil {
			return nil, fmt.Errorf("secret key is invalid: %w", err)
		}
		if prefix != "nsec" {
			return nil, errors.New("secret key is not an nsec or valid hex")
		}

		switch v := sk.(type) {
		case string:
			skHex = v
		case []byte:
			skHex = hex.EncodeToString(v)
		default:
			return nil, errors.New("secret key is an unexpected nsec payload type")
		}
	}

	pubHex, err := nostr.GetPublicKey(skHex)
	if err != nil {
		return nil, fmt.Errorf("failed to derive public key: %w", err)
	}

	nsec, err := nip19.EncodePrivateKey(skHex)
	if err != nil {
		return nil, fmt.Errorf("failed to encode private key: %w", err)
	}

	npub, err := nip19.EncodePublicKey(pubHex)
	if err != nil {
		return nil, fmt.Errorf("failed to encode public key: %w", err)
	}

	return &KeyPair{
		PrivateKeyHex:    skHex,
		PrivateKeyBech32: nsec,
		PublicKeyHex:     pubHex,
		PublicKeyBech32:  npub,
	}, nil
}
