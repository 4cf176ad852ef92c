package flow

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	jsoncdc "github.com/onflow/cadence/encoding/json"
)

// Voucher is the JSON form of a transaction exchanged with wallets and
// remote signers. Signatures are keyed by address rather than signer index,
// so a voucher stays valid when its signer list is rebuilt on the other side.
type Voucher struct {
	Cadence      string             `json:"cadence"`
	RefBlock     string             `json:"refBlock"`
	ComputeLimit uint64             `json:"computeLimit"`
	Arguments    []json.RawMessage  `json:"arguments"`
	ProposalKey  VoucherProposalKey `json:"proposalKey"`
	Payer        string             `json:"payer"`
	Authorizers  []string           `json:"authorizers"`
	PayloadSigs  []VoucherSignature `json:"payloadSigs"`
	EnvelopeSigs []VoucherSignature `json:"envelopeSigs"`
}

type VoucherProposalKey struct {
	Address     string `json:"address"`
	KeyID       uint32 `json:"keyId"`
	SequenceNum uint64 `json:"sequenceNum"`
}

type VoucherSignature struct {
	Address string `json:"address"`
	KeyID   uint32 `json:"keyId"`
	Sig     string `json:"sig"`
}

// VoucherFromTransaction returns the voucher of a transaction. Every argument
// must be valid JSON, which holds for JSON-Cadence encoded arguments.
func VoucherFromTransaction(tx Transaction) (Voucher, error) {
	arguments := make([]json.RawMessage, len(tx.Arguments))
	for i, arg := range tx.Arguments {
		if !json.Valid(arg) {
			return Voucher{}, fmt.Errorf("argument %d is not JSON-Cadence encoded", i)
		}
		arguments[i] = append(json.RawMessage(nil), arg...)
	}

	authorizers := make([]string, len(tx.Authorizers))
	for i, auth := range tx.Authorizers {
		authorizers[i] = auth.String()
	}

	return Voucher{
		Cadence:      string(tx.Script),
		RefBlock:     tx.ReferenceBlockID.Hex(),
		ComputeLimit: tx.GasLimit,
		Arguments:    arguments,
		ProposalKey: VoucherProposalKey{
			Address:     tx.ProposalKey.Address.String(),
			KeyID:       tx.ProposalKey.KeyIndex,
			SequenceNum: tx.ProposalKey.SequenceNumber,
		},
		Payer:        tx.Payer.String(),
		Authorizers:  authorizers,
		PayloadSigs:  voucherSignatures(tx.PayloadSignatures),
		EnvelopeSigs: voucherSignatures(tx.EnvelopeSignatures),
	}, nil
}

func voucherSignatures(signatures []TransactionSignature) []VoucherSignature {
	sigs := make([]VoucherSignature, len(signatures))
	for i, s := range signatures {
		sigs[i] = VoucherSignature{
			Address: s.Address.String(),
			KeyID:   s.KeyIndex,
			Sig:     hex.EncodeToString(s.Signature),
		}
	}
	return sigs
}

// Transaction rebuilds the transaction described by the voucher. Every
// malformed address, identifier or signature is reported.
//
// Arguments are re-encoded with the JSON-Cadence encoder, so the payload
// matches the one of the original transaction when its arguments were added
// with AddArgument.
func (v Voucher) Transaction() (Transaction, error) {
	b := NewTransactionBuilder().
		Script([]byte(v.Cadence)).
		ReferenceBlockIDHex(v.RefBlock).
		GasLimit(v.ComputeLimit).
		ProposalKeyHex(v.ProposalKey.Address, v.ProposalKey.KeyID, v.ProposalKey.SequenceNum).
		PayerHex(v.Payer)

	for i, arg := range v.Arguments {
		value, err := jsoncdc.Decode(nil, arg)
		if err != nil {
			return Transaction{}, fmt.Errorf("invalid argument %d: %w", i, err)
		}
		b.Argument(value)
	}

	for _, auth := range v.Authorizers {
		b.AuthorizerHex(auth)
	}

	built, err := b.Build()
	if err != nil {
		return Transaction{}, err
	}
	tx := *built

	var errs *multierror.Error
	for _, s := range v.PayloadSigs {
		address, sig, err := s.decode()
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("invalid payload signature: %w", err))
			continue
		}
		tx = tx.AddPayloadSignature(address, s.KeyID, sig)
	}

	for _, s := range v.EnvelopeSigs {
		address, sig, err := s.decode()
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("invalid envelope signature: %w", err))
			continue
		}
		tx = tx.AddEnvelopeSignature(address, s.KeyID, sig)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return Transaction{}, err
	}

	return tx, nil
}

func (s VoucherSignature) decode() (Address, []byte, error) {
	address, err := HexToAddress(s.Address)
	if err != nil {
		return EmptyAddress, nil, err
	}

	sig, err := hex.DecodeString(strings.TrimPrefix(s.Sig, "0x"))
	if err != nil {
		return EmptyAddress, nil, InvalidFormatError{Kind: "signature", Input: s.Sig, Err: err}
	}

	return address, sig, nil
}
