package flow

import (
	"fmt"

	"github.com/onflow/cadence"
	jsoncdc "github.com/onflow/cadence/encoding/json"

	"github.com/onflow/flow-client-go/crypto"
	"github.com/onflow/flow-client-go/model/encoding/rlp"
	"github.com/onflow/flow-client-go/model/fingerprint"
)

// Transaction is a transaction ready to be signed and submitted.
//
// Transaction is a value type: every method returns a new transaction and
// leaves the receiver untouched, so a transaction can be shared between
// goroutines and signed concurrently by different parties.
type Transaction struct {
	// the transaction script as UTF-8 encoded Cadence source code
	Script []byte

	// arguments passed to the Cadence transaction, each one JSON-Cadence encoded
	Arguments [][]byte

	// A reference to a previous block
	// A transaction is expired after specific number of blocks (defined by network) counting from this block
	ReferenceBlockID Identifier

	// Max amount of computation which is allowed to be done during this transaction
	GasLimit uint64

	// Account key used to propose the transaction
	ProposalKey ProposalKey

	// Account that pays for this transaction fees
	Payer Address

	// Accounts whose assets the transaction touches, in declaration order.
	// Accounts listed here all have to provide signatures
	Authorizers []Address

	// Signatures over the payload by the proposer and authorizers
	PayloadSignatures []TransactionSignature

	// payer signature over the envelope (payload + payload signatures)
	EnvelopeSignatures []TransactionSignature
}

// NewTransaction returns an empty transaction.
func NewTransaction() Transaction {
	return Transaction{}
}

// SetScript returns a copy of the transaction with the given script.
func (tx Transaction) SetScript(script []byte) Transaction {
	c := tx.copy()
	c.Script = append([]byte(nil), script...)
	return c
}

// AddRawArgument returns a copy of the transaction with an already encoded
// argument appended.
func (tx Transaction) AddRawArgument(arg []byte) Transaction {
	c := tx.copy()
	c.Arguments = append(c.Arguments, append([]byte(nil), arg...))
	return c
}

// AddArgument returns a copy of the transaction with the JSON-Cadence
// encoding of value appended to the arguments.
func (tx Transaction) AddArgument(value cadence.Value) (Transaction, error) {
	arg, err := jsoncdc.Encode(value)
	if err != nil {
		return tx, fmt.Errorf("could not encode argument: %w", err)
	}
	return tx.AddRawArgument(arg), nil
}

// SetReferenceBlockID returns a copy of the transaction with the given reference block.
func (tx Transaction) SetReferenceBlockID(blockID Identifier) Transaction {
	c := tx.copy()
	c.ReferenceBlockID = blockID
	return c
}

// SetGasLimit returns a copy of the transaction with the given gas limit.
func (tx Transaction) SetGasLimit(limit uint64) Transaction {
	c := tx.copy()
	c.GasLimit = limit
	return c
}

// SetProposalKey returns a copy of the transaction with the given proposal key.
//
// The first two arguments specify the account key to be used, and the last argument is the sequence
// number being declared.
func (tx Transaction) SetProposalKey(address Address, keyIndex uint32, sequenceNumber uint64) Transaction {
	c := tx.copy()
	c.ProposalKey = ProposalKey{
		Address:        address,
		KeyIndex:       keyIndex,
		SequenceNumber: sequenceNumber,
	}
	c.reindexSignatures()
	return c
}

// SetPayer returns a copy of the transaction with the given payer.
func (tx Transaction) SetPayer(address Address) Transaction {
	c := tx.copy()
	c.Payer = address
	c.reindexSignatures()
	return c
}

// AddAuthorizer returns a copy of the transaction with an authorizer appended.
func (tx Transaction) AddAuthorizer(address Address) Transaction {
	c := tx.copy()
	c.Authorizers = append(c.Authorizers, address)
	c.reindexSignatures()
	return c
}

// MissingFields checks if a transaction is missing any required fields and returns those that are missing.
func (tx Transaction) MissingFields() []string {
	// Required fields are Script, ReferenceBlockID, Payer
	missingFields := make([]string, 0)

	if len(tx.Script) == 0 {
		missingFields = append(missingFields, TransactionFieldScript.String())
	}

	if tx.ReferenceBlockID == ZeroID {
		missingFields = append(missingFields, TransactionFieldRefBlockID.String())
	}

	if tx.Payer == EmptyAddress {
		missingFields = append(missingFields, TransactionFieldPayer.String())
	}

	return missingFields
}

// ByteSize returns an approximation of the size of the transaction.
func (tx Transaction) ByteSize() uint {
	size := 0
	size += len(tx.ReferenceBlockID)
	size += len(tx.Script)
	for _, arg := range tx.Arguments {
		size += len(arg)
	}
	size += 8 // gas size
	size += tx.ProposalKey.ByteSize()
	size += AddressLength                       // payer address
	size += len(tx.Authorizers) * AddressLength // Authorizers
	for _, s := range tx.PayloadSignatures {
		size += s.ByteSize()
	}
	for _, s := range tx.EnvelopeSignatures {
		size += s.ByteSize()
	}
	return uint(size)
}

// SignerList returns the unique accounts required to sign this transaction.
//
// The list is returned in the following order:
// 1. PROPOSER
// 2. PAYER
// 3. AUTHORIZERS (in insertion order)
//
// The only exception to the above ordering is for deduplication; if the same account
// is used in multiple signing roles, only the first occurrence is included in the list.
// Empty addresses are skipped.
func (tx Transaction) SignerList() []Address {
	signers := make([]Address, 0, 2+len(tx.Authorizers))
	seen := make(map[Address]struct{})

	var addSigner = func(address Address) {
		if address == EmptyAddress {
			return
		}
		if _, ok := seen[address]; ok {
			return
		}

		signers = append(signers, address)
		seen[address] = struct{}{}
	}

	addSigner(tx.ProposalKey.Address)
	addSigner(tx.Payer)
	for _, authorizer := range tx.Authorizers {
		addSigner(authorizer)
	}

	return signers
}

// signerMap returns a mapping from address to signer index.
func (tx Transaction) signerMap() map[Address]int {
	signers := make(map[Address]int)

	for i, signer := range tx.SignerList() {
		signers[signer] = i
	}

	return signers
}

// PayloadMessage returns the canonical payload, the message signed by the
// proposer and the authorizers.
func (tx Transaction) PayloadMessage() []byte {
	return fingerprint.Fingerprint(tx.payloadCanonicalForm())
}

// EnvelopeMessage returns the signable message for transaction envelope:
// the payload and the payload signatures.
//
// This message is only signed by the payer account.
func (tx Transaction) EnvelopeMessage() []byte {
	return fingerprint.Fingerprint(tx.envelopeCanonicalForm())
}

// PaymentEnvelope returns the payload followed by both signature lists.
func (tx Transaction) PaymentEnvelope() []byte {
	return fingerprint.Fingerprint(tx.transactionCanonicalForm())
}

// Encode returns the canonical encoding of the transaction, the bytes
// submitted to the network. Signature lists are encoded empty when the
// transaction is unsigned.
func (tx Transaction) Encode() []byte {
	return tx.PaymentEnvelope()
}

// ID returns the SHA3-256 hash of the canonical encoding. The ID changes as
// signatures are added and is only final once the transaction is fully signed.
func (tx Transaction) ID() Identifier {
	return MakeIDFromFingerPrint(tx.Encode())
}

// SignPayload signs the transaction payload (TransactionDomainTag + payload)
// with the given signer and returns a copy of the transaction carrying the
// resulting payload signature.
//
// Payload signatures must be collected before envelope signatures: signing the
// payload afterwards changes the envelope and invalidates the payer signature.
func (tx Transaction) SignPayload(address Address, keyIndex uint32, signer crypto.Signer) (Transaction, error) {
	sig, err := crypto.SignTransactionMessage(signer, tx.PayloadMessage())
	if err != nil {
		return tx, fmt.Errorf("failed to sign transaction payload with given key: %w", err)
	}

	return tx.AddPayloadSignature(address, keyIndex, sig), nil
}

// SignEnvelope signs the full transaction (TransactionDomainTag + payload +
// payload signatures) with the given signer and returns a copy of the
// transaction carrying the resulting envelope signature.
func (tx Transaction) SignEnvelope(address Address, keyIndex uint32, signer crypto.Signer) (Transaction, error) {
	sig, err := crypto.SignTransactionMessage(signer, tx.EnvelopeMessage())
	if err != nil {
		return tx, fmt.Errorf("failed to sign transaction envelope with given key: %w", err)
	}

	return tx.AddEnvelopeSignature(address, keyIndex, sig), nil
}

// String returns the string representation of a transaction.
func (tx Transaction) String() string {
	return fmt.Sprintf("Transaction %v submitted by %v (block %v)",
		tx.ID(), tx.Payer.Hex(), tx.ReferenceBlockID)
}

func (tx Transaction) copy() Transaction {
	c := tx
	c.Script = append([]byte(nil), tx.Script...)

	if tx.Arguments != nil {
		c.Arguments = make([][]byte, len(tx.Arguments))
		for i, arg := range tx.Arguments {
			c.Arguments[i] = append([]byte(nil), arg...)
		}
	}

	if tx.Authorizers != nil {
		c.Authorizers = append([]Address(nil), tx.Authorizers...)
	}

	c.PayloadSignatures = signaturesList(tx.PayloadSignatures).copy()
	c.EnvelopeSignatures = signaturesList(tx.EnvelopeSignatures).copy()

	return c
}

// payloadCanonicalForm is the RLP layout of the payload; field order is
// consensus critical.
type payloadCanonicalForm struct {
	Script                    []byte
	Arguments                 [][]byte
	ReferenceBlockID          []byte
	GasLimit                  uint64
	ProposalKeyAddress        []byte
	ProposalKeyIndex          uint32
	ProposalKeySequenceNumber uint64
	Payer                     []byte
	Authorizers               [][]byte
}

type envelopeCanonicalForm struct {
	Payload           payloadCanonicalForm
	PayloadSignatures []signatureCanonicalForm
}

type transactionCanonicalForm struct {
	Payload            payloadCanonicalForm
	PayloadSignatures  []signatureCanonicalForm
	EnvelopeSignatures []signatureCanonicalForm
}

func (tx Transaction) payloadCanonicalForm() payloadCanonicalForm {
	authorizers := make([][]byte, len(tx.Authorizers))
	for i, auth := range tx.Authorizers {
		authorizers[i] = auth.Bytes()
	}

	return payloadCanonicalForm{
		Script:                    tx.Script,
		Arguments:                 tx.Arguments,
		ReferenceBlockID:          tx.ReferenceBlockID.Bytes(),
		GasLimit:                  tx.GasLimit,
		ProposalKeyAddress:        tx.ProposalKey.Address.Bytes(),
		ProposalKeyIndex:          tx.ProposalKey.KeyIndex,
		ProposalKeySequenceNumber: tx.ProposalKey.SequenceNumber,
		Payer:                     tx.Payer.Bytes(),
		Authorizers:               authorizers,
	}
}

func (tx Transaction) envelopeCanonicalForm() envelopeCanonicalForm {
	return envelopeCanonicalForm{
		Payload:           tx.payloadCanonicalForm(),
		PayloadSignatures: signaturesList(tx.PayloadSignatures).canonicalForm(),
	}
}

func (tx Transaction) transactionCanonicalForm() transactionCanonicalForm {
	return transactionCanonicalForm{
		Payload:            tx.payloadCanonicalForm(),
		PayloadSignatures:  signaturesList(tx.PayloadSignatures).canonicalForm(),
		EnvelopeSignatures: signaturesList(tx.EnvelopeSignatures).canonicalForm(),
	}
}

// DecodeTransaction decodes a transaction from its canonical encoding.
//
// Addresses and identifiers are length checked, and every signer index must
// point into the signer list of the decoded transaction.
func DecodeTransaction(b []byte) (Transaction, error) {
	var form transactionCanonicalForm
	if err := rlp.NewEncoder().Decode(b, &form); err != nil {
		return Transaction{}, fmt.Errorf("could not decode transaction: %w", err)
	}

	tx, err := form.Payload.transaction()
	if err != nil {
		return Transaction{}, err
	}

	signers := tx.SignerList()

	tx.PayloadSignatures, err = signaturesFromCanonicalForm(form.PayloadSignatures, signers)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid payload signatures: %w", err)
	}

	tx.EnvelopeSignatures, err = signaturesFromCanonicalForm(form.EnvelopeSignatures, signers)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid envelope signatures: %w", err)
	}

	return tx, nil
}

func (p payloadCanonicalForm) transaction() (Transaction, error) {
	refBlockID, err := BytesToID(p.ReferenceBlockID)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid reference block: %w", err)
	}

	proposer, err := BytesToAddress(p.ProposalKeyAddress)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid proposer: %w", err)
	}

	payer, err := BytesToAddress(p.Payer)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid payer: %w", err)
	}

	authorizers := make([]Address, len(p.Authorizers))
	for i, auth := range p.Authorizers {
		authorizers[i], err = BytesToAddress(auth)
		if err != nil {
			return Transaction{}, fmt.Errorf("invalid authorizer %d: %w", i, err)
		}
	}

	return Transaction{
		Script:           p.Script,
		Arguments:        p.Arguments,
		ReferenceBlockID: refBlockID,
		GasLimit:         p.GasLimit,
		ProposalKey: ProposalKey{
			Address:        proposer,
			KeyIndex:       p.ProposalKeyIndex,
			SequenceNumber: p.ProposalKeySequenceNumber,
		},
		Payer:       payer,
		Authorizers: authorizers,
	}, nil
}

// TransactionField represents a required transaction field.
type TransactionField int

const (
	TransactionFieldUnknown TransactionField = iota
	TransactionFieldScript
	TransactionFieldRefBlockID
	TransactionFieldPayer
)

// String returns the string representation of a transaction field.
func (f TransactionField) String() string {
	return [...]string{"Unknown", "Script", "ReferenceBlockID", "Payer"}[f]
}

// A ProposalKey is the key that specifies the proposal key and sequence number for a transaction.
type ProposalKey struct {
	Address        Address
	KeyIndex       uint32
	SequenceNumber uint64
}

// ByteSize returns the byte size of the proposal key
func (p ProposalKey) ByteSize() int {
	keyIndexLen := 4
	sequenceNumberLen := 8
	return len(p.Address) + keyIndexLen + sequenceNumberLen
}
