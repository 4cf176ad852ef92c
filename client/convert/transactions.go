package convert

import (
	"fmt"

	"github.com/onflow/flow/protobuf/go/flow/entities"

	"github.com/onflow/flow-client-go/model/flow"
)

// TransactionToMessage converts a flow.Transaction to a protobuf message
func TransactionToMessage(tx flow.Transaction) *entities.Transaction {
	var proposalKeyMessage *entities.Transaction_ProposalKey
	if tx.ProposalKey.Address != flow.EmptyAddress {
		proposalKeyMessage = &entities.Transaction_ProposalKey{
			Address:        tx.ProposalKey.Address.Bytes(),
			KeyId:          tx.ProposalKey.KeyIndex,
			SequenceNumber: tx.ProposalKey.SequenceNumber,
		}
	}

	var payer []byte
	if tx.Payer != flow.EmptyAddress {
		payer = tx.Payer.Bytes()
	}

	authMessages := make([][]byte, len(tx.Authorizers))
	for i, auth := range tx.Authorizers {
		authMessages[i] = auth.Bytes()
	}

	return &entities.Transaction{
		Script:             tx.Script,
		Arguments:          tx.Arguments,
		ReferenceBlockId:   IdentifierToMessage(tx.ReferenceBlockID),
		GasLimit:           tx.GasLimit,
		ProposalKey:        proposalKeyMessage,
		Payer:              payer,
		Authorizers:        authMessages,
		PayloadSignatures:  signaturesToMessages(tx.PayloadSignatures),
		EnvelopeSignatures: signaturesToMessages(tx.EnvelopeSignatures),
	}
}

func signaturesToMessages(signatures []flow.TransactionSignature) []*entities.Transaction_Signature {
	messages := make([]*entities.Transaction_Signature, len(signatures))
	for i, sig := range signatures {
		messages[i] = &entities.Transaction_Signature{
			Address:   sig.Address.Bytes(),
			KeyId:     sig.KeyIndex,
			Signature: sig.Signature,
		}
	}
	return messages
}

// MessageToTransaction converts a protobuf message to a flow.Transaction.
//
// Addresses and identifiers of the wrong length are rejected with a
// flow.InvalidLengthError.
func MessageToTransaction(m *entities.Transaction) (flow.Transaction, error) {
	var t flow.Transaction
	if m == nil {
		return t, ErrEmptyMessage
	}

	refBlockID, err := optionalIdentifier("reference block", m.GetReferenceBlockId())
	if err != nil {
		return t, err
	}

	tx := flow.NewTransaction().
		SetScript(m.GetScript()).
		SetReferenceBlockID(refBlockID).
		SetGasLimit(m.GetGasLimit())

	for _, arg := range m.GetArguments() {
		tx = tx.AddRawArgument(arg)
	}

	proposalKey := m.GetProposalKey()
	if proposalKey != nil && IsNonEmptyAddress(proposalKey.GetAddress()) {
		proposalAddress, err := flow.BytesToAddress(proposalKey.GetAddress())
		if err != nil {
			return t, fmt.Errorf("could not convert proposer address: %w", err)
		}
		tx = tx.SetProposalKey(proposalAddress, proposalKey.GetKeyId(), proposalKey.GetSequenceNumber())
	}

	payer := m.GetPayer()
	if IsNonEmptyAddress(payer) {
		payerAddress, err := flow.BytesToAddress(payer)
		if err != nil {
			return t, fmt.Errorf("could not convert payer address: %w", err)
		}
		tx = tx.SetPayer(payerAddress)
	}

	for i, authorizer := range m.GetAuthorizers() {
		authorizerAddress, err := flow.BytesToAddress(authorizer)
		if err != nil {
			return t, fmt.Errorf("could not convert authorizer %d address: %w", i, err)
		}
		tx = tx.AddAuthorizer(authorizerAddress)
	}

	for i, sig := range m.GetPayloadSignatures() {
		addr, err := flow.BytesToAddress(sig.GetAddress())
		if err != nil {
			return t, fmt.Errorf("could not convert payload signature %d address: %w", i, err)
		}
		tx = tx.AddPayloadSignature(addr, sig.GetKeyId(), sig.GetSignature())
	}

	for i, sig := range m.GetEnvelopeSignatures() {
		addr, err := flow.BytesToAddress(sig.GetAddress())
		if err != nil {
			return t, fmt.Errorf("could not convert envelope signature %d address: %w", i, err)
		}
		tx = tx.AddEnvelopeSignature(addr, sig.GetKeyId(), sig.GetSignature())
	}

	return tx, nil
}
