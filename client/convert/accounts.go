package convert

import (
	"fmt"

	"github.com/onflow/crypto"
	"github.com/onflow/crypto/hash"
	"github.com/onflow/flow/protobuf/go/flow/entities"

	"github.com/onflow/flow-client-go/model/flow"
)

// AccountToMessage converts a flow.Account to a protobuf message
func AccountToMessage(a *flow.Account) *entities.Account {
	keys := make([]*entities.AccountKey, len(a.Keys))
	for i, k := range a.Keys {
		keys[i] = AccountKeyToMessage(k)
	}

	return &entities.Account{
		Address:   a.Address.Bytes(),
		Balance:   a.Balance,
		Keys:      keys,
		Contracts: a.Contracts,
	}
}

// MessageToAccount converts a protobuf message to a flow.Account
func MessageToAccount(m *entities.Account) (*flow.Account, error) {
	if m == nil {
		return nil, ErrEmptyMessage
	}

	address, err := flow.BytesToAddress(m.GetAddress())
	if err != nil {
		return nil, fmt.Errorf("could not convert account address: %w", err)
	}

	keys := make([]flow.AccountKey, len(m.GetKeys()))
	for i, key := range m.GetKeys() {
		accountKey, err := MessageToAccountKey(key)
		if err != nil {
			return nil, fmt.Errorf("could not convert key %d of account %s: %w", i, address, err)
		}
		keys[i] = *accountKey
	}

	return &flow.Account{
		Address:   address,
		Balance:   m.GetBalance(),
		Keys:      keys,
		Contracts: m.GetContracts(),
	}, nil
}

// AccountKeyToMessage converts a flow.AccountKey to a protobuf message
func AccountKeyToMessage(a flow.AccountKey) *entities.AccountKey {
	return &entities.AccountKey{
		Index:          a.Index,
		PublicKey:      a.PublicKey.Encode(),
		SignAlgo:       uint32(a.SigAlgo),
		HashAlgo:       uint32(a.HashAlgo),
		Weight:         uint32(a.Weight),
		SequenceNumber: uint32(a.SequenceNumber),
		Revoked:        a.Revoked,
	}
}

// MessageToAccountKey converts a protobuf message to a flow.AccountKey
func MessageToAccountKey(m *entities.AccountKey) (*flow.AccountKey, error) {
	if m == nil {
		return nil, ErrEmptyMessage
	}

	sigAlgo := crypto.SigningAlgorithm(m.GetSignAlgo())
	hashAlgo := hash.HashingAlgorithm(m.GetHashAlgo())

	publicKey, err := crypto.DecodePublicKey(sigAlgo, m.GetPublicKey())
	if err != nil {
		return nil, fmt.Errorf("could not decode %s public key: %w", sigAlgo, err)
	}

	return &flow.AccountKey{
		Index:          m.GetIndex(),
		PublicKey:      publicKey,
		SigAlgo:        sigAlgo,
		HashAlgo:       hashAlgo,
		Weight:         int(m.GetWeight()),
		SequenceNumber: uint64(m.GetSequenceNumber()),
		Revoked:        m.GetRevoked(),
	}, nil
}
