package flow

import (
	"fmt"

	"github.com/onflow/crypto"
	"github.com/onflow/crypto/hash"
)

// Account represents an account on the Flow network.
type Account struct {
	Address   Address
	Balance   uint64
	Keys      []AccountKey
	Contracts map[string][]byte
}

// AccountKey is a public key associated with an account.
//
// An account key contains the public key, signing and hashing algorithms, a
// key weight and the sequence number used for proposals.
type AccountKey struct {
	Index          uint32
	PublicKey      crypto.PublicKey
	SigAlgo        crypto.SigningAlgorithm
	HashAlgo       hash.HashingAlgorithm
	Weight         int
	SequenceNumber uint64
	Revoked        bool
}

// AccountKeyWeightThreshold is the total key weight required to authorize a
// transaction on behalf of an account.
const AccountKeyWeightThreshold = 1000

// Key returns the key with the given index.
func (a Account) Key(index uint32) (AccountKey, error) {
	for _, key := range a.Keys {
		if key.Index == index {
			return key, nil
		}
	}
	return AccountKey{}, fmt.Errorf("account %s has no key with index %d", a.Address, index)
}
