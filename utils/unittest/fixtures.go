package unittest

import (
	crand "crypto/rand"
	"math/rand"
	"testing"
	"time"

	"github.com/onflow/cadence"
	jsoncdc "github.com/onflow/cadence/encoding/json"
	"github.com/onflow/crypto"

	"github.com/onflow/flow-client-go/model/flow"
)

const (
	DefaultSeedFixtureLength = 64
	ServiceAddressHex        = "f8d6e0586b0a20c7"
)

// returns a deterministic math/rand PRG that can be used for deterministic randomness in tests only.
// The PRG seed is logged in case the test iteration needs to be reproduced.
func GetPRG(t *testing.T) *rand.Rand {
	random := time.Now().UnixNano()
	t.Logf("rng seed is %d", random)
	rng := rand.New(rand.NewSource(random))
	return rng
}

func AddressFixture() flow.Address {
	return flow.MustHexToAddress(ServiceAddressHex)
}

func RandomAddressFixture() flow.Address {
	var addr flow.Address
	_, _ = crand.Read(addr[:])
	return addr
}

func IdentifierFixture() flow.Identifier {
	var id flow.Identifier
	_, _ = crand.Read(id[:])
	return id
}

// SeedFixture returns a random []byte with length n
func SeedFixture(n int) []byte {
	var seed = make([]byte, n)
	_, _ = crand.Read(seed)
	return seed
}

// Uint64InRange returns a uint64 value drawn from the uniform random distribution [min,max].
func Uint64InRange(min, max uint64) uint64 {
	return min + uint64(rand.Intn(int(max)+1-int(min)))
}

func InvalidFormatSignature() flow.TransactionSignature {
	return flow.TransactionSignature{
		Address:     AddressFixture(),
		SignerIndex: 0,
		Signature:   make([]byte, crypto.SignatureLenECDSAP256), // zero signature is invalid
		KeyIndex:    1,
	}
}

// SignatureFixture returns random bytes shaped like an ECDSA signature that
// passes the format check.
func SignatureFixture() []byte {
	sigLen := crypto.SignatureLenECDSAP256
	sig := SeedFixture(sigLen)
	sig[sigLen/2] = 0
	sig[0] = 0
	sig[sigLen/2-1] |= 1
	sig[sigLen-1] |= 1
	return sig
}

func TransactionSignatureFixture() flow.TransactionSignature {
	return flow.TransactionSignature{
		Address:     AddressFixture(),
		SignerIndex: 0,
		Signature:   SignatureFixture(),
		KeyIndex:    1,
	}
}

func ProposalKeyFixture() flow.ProposalKey {
	return flow.ProposalKey{
		Address:        AddressFixture(),
		KeyIndex:       1,
		SequenceNumber: 0,
	}
}

// TransactionFixture returns a transaction proposed, paid and authorized by
// the service account, carrying an envelope signature of the payer.
func TransactionFixture(opts ...func(*flow.Transaction)) flow.Transaction {
	tx := flow.NewTransaction().
		SetScript([]byte("transaction { execute {} }")).
		SetReferenceBlockID(IdentifierFixture()).
		SetGasLimit(10).
		SetProposalKey(AddressFixture(), 1, 0).
		SetPayer(AddressFixture()).
		AddAuthorizer(AddressFixture()).
		AddEnvelopeSignature(AddressFixture(), 1, SignatureFixture())

	for _, apply := range opts {
		apply(&tx)
	}

	return tx
}

func WithReferenceBlock(id flow.Identifier) func(tx *flow.Transaction) {
	return func(tx *flow.Transaction) {
		*tx = tx.SetReferenceBlockID(id)
	}
}

func WithGasLimit(limit uint64) func(tx *flow.Transaction) {
	return func(tx *flow.Transaction) {
		*tx = tx.SetGasLimit(limit)
	}
}

func WithArguments(values ...cadence.Value) func(tx *flow.Transaction) {
	return func(tx *flow.Transaction) {
		for _, value := range values {
			updated, err := tx.AddArgument(value)
			if err != nil {
				panic(err)
			}
			*tx = updated
		}
	}
}

func BlockHeaderFixture(opts ...func(header *flow.BlockHeader)) flow.BlockHeader {
	header := flow.BlockHeader{
		ID:        IdentifierFixture(),
		ParentID:  IdentifierFixture(),
		Height:    rand.Uint64(),
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
		Status:    flow.BlockStatusSealed,
	}

	for _, apply := range opts {
		apply(&header)
	}

	return header
}

func WithHeaderHeight(height uint64) func(header *flow.BlockHeader) {
	return func(header *flow.BlockHeader) {
		header.Height = height
	}
}

var Event eventFactory

type eventFactory struct{}

func (f eventFactory) WithEventType(eventType flow.EventType) func(*flow.Event) {
	return func(e *flow.Event) {
		e.Type = eventType
	}
}

func (f eventFactory) WithPayload(payload []byte) func(*flow.Event) {
	return func(e *flow.Event) {
		e.Payload = payload
	}
}

func (f eventFactory) WithTransactionID(txID flow.Identifier) func(*flow.Event) {
	return func(e *flow.Event) {
		e.TransactionID = txID
	}
}

// EventFixture returns an account created event with a JSON-Cadence payload.
func EventFixture(opts ...func(*flow.Event)) flow.Event {
	payload, err := jsoncdc.Encode(cadence.NewInt(1))
	if err != nil {
		panic(err)
	}

	event := flow.Event{
		Type:             flow.EventAccountCreated,
		TransactionID:    IdentifierFixture(),
		TransactionIndex: rand.Uint32(),
		EventIndex:       rand.Uint32(),
		Payload:          payload,
	}

	for _, apply := range opts {
		apply(&event)
	}

	return event
}

func TransactionResultFixture(opts ...func(*flow.TransactionResult)) flow.TransactionResult {
	result := flow.TransactionResult{
		TransactionID: IdentifierFixture(),
		Status:        flow.TransactionStatusSealed,
		Events:        []flow.Event{EventFixture()},
		BlockID:       IdentifierFixture(),
		BlockHeight:   rand.Uint64(),
		CollectionID:  IdentifierFixture(),
	}

	for _, apply := range opts {
		apply(&result)
	}

	return result
}

func WithTransactionStatus(status flow.TransactionStatus) func(*flow.TransactionResult) {
	return func(result *flow.TransactionResult) {
		result.Status = status
	}
}
