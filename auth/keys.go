package auth

import (
	"errors"
	"fmt"
)

// Key is one HMAC signing secret identified by the JWT "kid" header.
type Key struct {
	ID     string
	Secret []byte
}

// KeySet signs with its current key and verifies with any key it holds.
// Rotating means prepending a new key and keeping the old ones until every
// token they signed has expired.
type KeySet struct {
	current Key
	byID    map[string][]byte
}

// NewKeySet builds a key set; keys[0] is the signing key.
func NewKeySet(keys ...Key) (*KeySet, error) {
	if len(keys) == 0 {
		return nil, errors.New("key set needs at least one key")
	}
	ks := &KeySet{current: keys[0], byID: make(map[string][]byte, len(keys))}
	for _, k := range keys {
		if k.ID == "" || len(k.Secret) == 0 {
			return nil, errors.New("key id and secret are required")
		}
		if _, dup := ks.byID[k.ID]; dup {
			return nil, fmt.Errorf("duplicate key id %q", k.ID)
		}
		ks.byID[k.ID] = k.Secret
	}
	return ks, nil
}

func (ks *KeySet) Current() Key { return ks.current }

func (ks *KeySet) lookup(id string) ([]byte, bool) {
	secret, ok := ks.byID[id]
	return secret, ok
}
