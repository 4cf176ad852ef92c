package encoding

// List of domain separation tags for user signatures.
//
// Every message signed by an account key is prefixed with a fixed-size tag
// naming the kind of message. A signature produced for one domain therefore
// never verifies in another one: a signed user message cannot be replayed as
// a transaction signature and vice versa.

// DomainTagLength is the size of a domain tag in bytes.
const DomainTagLength = 32

// Flow protocol version and prefix
const protocolPrefix = "FLOW-V0.0-"

var (
	// UserDomainTag is the domain tag for arbitrary user messages.
	UserDomainTag = DomainTag(protocolPrefix + "user")
	// TransactionDomainTag is the domain tag for transaction payloads and envelopes.
	TransactionDomainTag = DomainTag(protocolPrefix + "transaction")
)

// DomainTag right-pads the tag name with zero bytes to DomainTagLength.
// Names longer than DomainTagLength are truncated.
func DomainTag(name string) [DomainTagLength]byte {
	var tag [DomainTagLength]byte
	copy(tag[:], name)
	return tag
}
