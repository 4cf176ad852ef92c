package flow

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// A TransactionSignature is a signature associated with a specific account key.
type TransactionSignature struct {
	Address Address
	// SignerIndex is the position of Address in the signer list of the
	// transaction, or -1 if the address does not sign the transaction.
	SignerIndex int
	KeyIndex    uint32
	Signature   []byte
}

// String returns the string representation of a transaction signature.
func (s TransactionSignature) String() string {
	return fmt.Sprintf("Address: %s. SignerIndex: %d. KeyIndex: %d. Signature: %x",
		s.Address, s.SignerIndex, s.KeyIndex, s.Signature)
}

// ByteSize returns the byte size of the transaction signature
func (s TransactionSignature) ByteSize() int {
	signerIndexLen := 8
	keyIndexLen := 4
	return len(s.Address) + signerIndexLen + keyIndexLen + len(s.Signature)
}

// signatureCanonicalForm is the RLP layout of a signature. The address is
// not encoded; receivers resolve it from the signer index.
type signatureCanonicalForm struct {
	SignerIndex uint64
	KeyIndex    uint32
	Signature   []byte
}

func (s TransactionSignature) canonicalForm() signatureCanonicalForm {
	return signatureCanonicalForm{
		SignerIndex: uint64(s.SignerIndex), // int is not RLP-serializable
		KeyIndex:    s.KeyIndex,
		Signature:   s.Signature,
	}
}

// AddPayloadSignature returns a copy of the transaction with a payload
// signature for the given account key. An existing signature for the same
// address and key index is replaced.
//
// A signature from an address outside the signer list gets signer index -1.
// Its index is recomputed when the proposer, payer or authorizers change.
func (tx Transaction) AddPayloadSignature(address Address, keyIndex uint32, sig []byte) Transaction {
	c := tx.copy()
	c.PayloadSignatures = addSignature(c.PayloadSignatures, c.createSignature(address, keyIndex, sig))
	return c
}

// AddEnvelopeSignature returns a copy of the transaction with an envelope
// signature for the given account key. An existing signature for the same
// address and key index is replaced.
func (tx Transaction) AddEnvelopeSignature(address Address, keyIndex uint32, sig []byte) Transaction {
	c := tx.copy()
	c.EnvelopeSignatures = addSignature(c.EnvelopeSignatures, c.createSignature(address, keyIndex, sig))
	return c
}

func (tx Transaction) createSignature(address Address, keyIndex uint32, sig []byte) TransactionSignature {
	signerIndex, signerExists := tx.signerMap()[address]
	if !signerExists {
		signerIndex = -1
	}

	return TransactionSignature{
		Address:     address,
		SignerIndex: signerIndex,
		KeyIndex:    keyIndex,
		Signature:   append([]byte(nil), sig...),
	}
}

// addSignature replaces the signature with the same address and key index or
// appends s, then sorts the list by signer index and key index.
func addSignature(signatures []TransactionSignature, s TransactionSignature) []TransactionSignature {
	replaced := false
	for i, existing := range signatures {
		if existing.Address == s.Address && existing.KeyIndex == s.KeyIndex {
			signatures[i] = s
			replaced = true
			break
		}
	}

	if !replaced {
		signatures = append(signatures, s)
	}

	slices.SortStableFunc(signatures, compareSignatures)

	return signatures
}

func compareSignatures(sigA, sigB TransactionSignature) int {
	if sigA.SignerIndex != sigB.SignerIndex {
		return sigA.SignerIndex - sigB.SignerIndex
	}

	switch {
	case sigA.KeyIndex < sigB.KeyIndex:
		return -1
	case sigA.KeyIndex > sigB.KeyIndex:
		return 1
	}
	return 0
}

// reindexSignatures recomputes the signer index of every signature from the
// current signer list and restores the signature order.
func (tx *Transaction) reindexSignatures() {
	if len(tx.PayloadSignatures) == 0 && len(tx.EnvelopeSignatures) == 0 {
		return
	}

	signers := tx.signerMap()
	signaturesList(tx.PayloadSignatures).reindex(signers)
	signaturesList(tx.EnvelopeSignatures).reindex(signers)
}

type signaturesList []TransactionSignature

func (s signaturesList) reindex(signers map[Address]int) {
	for i := range s {
		signerIndex, ok := signers[s[i].Address]
		if !ok {
			signerIndex = -1
		}
		s[i].SignerIndex = signerIndex
	}

	slices.SortStableFunc(s, compareSignatures)
}

func (s signaturesList) canonicalForm() []signatureCanonicalForm {
	signatures := make([]signatureCanonicalForm, len(s))

	for i, signature := range s {
		signatures[i] = signature.canonicalForm()
	}

	return signatures
}

func (s signaturesList) copy() []TransactionSignature {
	if s == nil {
		return nil
	}

	signatures := make([]TransactionSignature, len(s))
	for i, signature := range s {
		signature.Signature = append([]byte(nil), signature.Signature...)
		signatures[i] = signature
	}

	return signatures
}

func signaturesFromCanonicalForm(forms []signatureCanonicalForm, signers []Address) ([]TransactionSignature, error) {
	if len(forms) == 0 {
		return nil, nil
	}

	signatures := make([]TransactionSignature, len(forms))
	for i, form := range forms {
		if form.SignerIndex >= uint64(len(signers)) {
			return nil, fmt.Errorf("signer index %d out of range for %d signers", form.SignerIndex, len(signers))
		}

		signatures[i] = TransactionSignature{
			Address:     signers[form.SignerIndex],
			SignerIndex: int(form.SignerIndex),
			KeyIndex:    form.KeyIndex,
			Signature:   form.Signature,
		}
	}

	return signatures, nil
}
