package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	jsoncdc "github.com/onflow/cadence/encoding/json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/onflow/flow-client-go/access"
	fcrypto "github.com/onflow/flow-client-go/crypto"
	"github.com/onflow/flow-client-go/model/flow"
)

const (
	rolePayload  = "payload"
	roleEnvelope = "envelope"
	roleAuto     = "auto"
)

var (
	flagInput  string
	flagOutput string

	flagScript           string
	flagArguments        []string
	flagRefBlock         string
	flagGasLimit         uint64
	flagProposer         string
	flagProposerKeyIndex uint32
	flagSequenceNumber   int64
	flagPayer            string
	flagAuthorizers      []string

	flagSigner     string
	flagKeyIndex   uint32
	flagPrivateKey string
	flagRole       string

	flagWait           bool
	flagSkipValidation bool
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Build, sign and submit transactions",
}

var txBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an unsigned transaction and write it as a JSON voucher",
	Run:   runTxBuild,
}

var txSignCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign the payload or the envelope of a transaction voucher",
	Run:   runTxSign,
}

var txIDCmd = &cobra.Command{
	Use:   "id",
	Short: "Print the canonical encoding and the ID of a transaction voucher",
	Run:   runTxID,
}

var txSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a signed transaction voucher to the access node",
	Run:   runTxSend,
}

func init() {
	txBuildCmd.Flags().StringVar(&flagScript, "script", "", "path to the Cadence transaction script")
	_ = txBuildCmd.MarkFlagRequired("script")
	txBuildCmd.Flags().StringArrayVar(&flagArguments, "arg", nil, "JSON-Cadence encoded argument, can be repeated")
	txBuildCmd.Flags().StringVar(&flagRefBlock, "ref-block", "", "hex ID of the reference block, latest sealed block if empty")
	txBuildCmd.Flags().Uint64Var(&flagGasLimit, "gas-limit", 9999, "maximum computation of the transaction")
	txBuildCmd.Flags().StringVar(&flagProposer, "proposer", "", "address of the proposer")
	_ = txBuildCmd.MarkFlagRequired("proposer")
	txBuildCmd.Flags().Uint32Var(&flagProposerKeyIndex, "proposer-key-index", 0, "index of the proposal key")
	txBuildCmd.Flags().Int64Var(&flagSequenceNumber, "sequence-number", -1, "sequence number of the proposal key, read from the access node if negative")
	txBuildCmd.Flags().StringVar(&flagPayer, "payer", "", "address of the payer, the proposer if empty")
	txBuildCmd.Flags().StringSliceVar(&flagAuthorizers, "authorizer", nil, "address of an authorizer, can be repeated")
	txBuildCmd.Flags().StringVarP(&flagOutput, "output", "o", "-", "voucher output file, - for stdout")

	txSignCmd.Flags().StringVarP(&flagInput, "input", "i", "-", "voucher input file, - for stdin")
	txSignCmd.Flags().StringVarP(&flagOutput, "output", "o", "-", "voucher output file, - for stdout")
	txSignCmd.Flags().StringVar(&flagSigner, "signer", "", "address of the signing account")
	_ = txSignCmd.MarkFlagRequired("signer")
	txSignCmd.Flags().Uint32Var(&flagKeyIndex, "key-index", 0, "index of the signing key")
	txSignCmd.Flags().StringVar(&flagPrivateKey, "private-key", "", "hex encoded private key")
	_ = txSignCmd.MarkFlagRequired("private-key")
	txSignCmd.Flags().StringVar(&flagKeyType, "key-type", fcrypto.KeyTypeECDSA_P256_SHA3_256.String(), "signature and hash algorithm of the key")
	txSignCmd.Flags().StringVar(&flagRole, "role", roleAuto, "signature to add: payload, envelope, or auto (envelope for the payer)")

	txIDCmd.Flags().StringVarP(&flagInput, "input", "i", "-", "voucher input file, - for stdin")

	txSendCmd.Flags().StringVarP(&flagInput, "input", "i", "-", "voucher input file, - for stdin")
	txSendCmd.Flags().BoolVar(&flagWait, "wait", false, "wait until the transaction is sealed")
	txSendCmd.Flags().BoolVar(&flagSkipValidation, "skip-validation", false, "submit without client-side validation")

	txCmd.AddCommand(txBuildCmd)
	txCmd.AddCommand(txSignCmd)
	txCmd.AddCommand(txIDCmd)
	txCmd.AddCommand(txSendCmd)
}

func runTxBuild(cmd *cobra.Command, _ []string) {
	script, err := os.ReadFile(flagScript)
	if err != nil {
		log.Fatal().Err(err).Msg("could not read script")
	}

	c, err := newClient()
	if err != nil {
		log.Fatal().Err(err).Msg("could not create client")
	}
	defer c.Close()

	params := buildParams{
		Script:           script,
		Arguments:        flagArguments,
		RefBlock:         flagRefBlock,
		GasLimit:         flagGasLimit,
		Proposer:         flagProposer,
		ProposerKeyIndex: flagProposerKeyIndex,
		SequenceNumber:   flagSequenceNumber,
		Payer:            flagPayer,
		Authorizers:      flagAuthorizers,
	}

	tx, err := buildTransaction(cmd.Context(), c, params)
	if err != nil {
		log.Fatal().Err(err).Msg("could not build transaction")
	}

	if err := writeVoucher(cmd.OutOrStdout(), flagOutput, tx); err != nil {
		log.Fatal().Err(err).Msg("could not write voucher")
	}
}

func runTxSign(cmd *cobra.Command, _ []string) {
	tx, err := readVoucher(cmd.InOrStdin(), flagInput)
	if err != nil {
		log.Fatal().Err(err).Msg("could not read voucher")
	}

	keyType, err := fcrypto.ParseKeyType(flagKeyType)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid key type")
	}

	sk, err := fcrypto.DecodePrivateKeyHex(keyType, flagPrivateKey)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid private key")
	}

	signer, err := fcrypto.NewSigner(keyType, sk)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create signer")
	}

	address, err := flow.HexToAddress(flagSigner)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid signer address")
	}

	signed, err := signTransaction(tx, address, flagKeyIndex, signer, flagRole)
	if err != nil {
		log.Fatal().Err(err).Msg("could not sign transaction")
	}

	if err := writeVoucher(cmd.OutOrStdout(), flagOutput, signed); err != nil {
		log.Fatal().Err(err).Msg("could not write voucher")
	}
}

func runTxID(cmd *cobra.Command, _ []string) {
	tx, err := readVoucher(cmd.InOrStdin(), flagInput)
	if err != nil {
		log.Fatal().Err(err).Msg("could not read voucher")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Encoded: %x\n", tx.Encode())
	fmt.Fprintf(cmd.OutOrStdout(), "ID:      %s\n", tx.ID())
}

func runTxSend(cmd *cobra.Command, _ []string) {
	tx, err := readVoucher(cmd.InOrStdin(), flagInput)
	if err != nil {
		log.Fatal().Err(err).Msg("could not read voucher")
	}

	c, err := newClient()
	if err != nil {
		log.Fatal().Err(err).Msg("could not create client")
	}
	defer c.Close()

	ctx := cmd.Context()

	if !flagSkipValidation {
		err = newValidator(c).Validate(ctx, tx)
		if err != nil {
			log.Fatal().Err(err).Msg("transaction is invalid")
		}
	}

	id, err := c.SendTransaction(ctx, tx)
	if err != nil {
		log.Fatal().Err(err).Msg("could not send transaction")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ID: %s\n", id)

	if !flagWait {
		return
	}

	if cfg.SealTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.SealTimeout)
		defer cancel()
	}

	result, err := c.WaitForSeal(ctx, id)
	if err != nil {
		log.Fatal().Err(err).Msg("could not wait for transaction seal")
	}

	fmt.Fprintln(cmd.OutOrStdout(), result)
	if err := result.Err(); err != nil {
		log.Fatal().Err(err).Msg("transaction failed")
	}
}

type buildParams struct {
	Script           []byte
	Arguments        []string
	RefBlock         string
	GasLimit         uint64
	Proposer         string
	ProposerKeyIndex uint32
	SequenceNumber   int64
	Payer            string
	Authorizers      []string
}

// buildTransaction builds an unsigned transaction. The reference block and
// the proposal sequence number are read from the access node when unset.
func buildTransaction(ctx context.Context, api access.API, params buildParams) (flow.Transaction, error) {
	proposer, err := flow.HexToAddress(params.Proposer)
	if err != nil {
		return flow.Transaction{}, fmt.Errorf("invalid proposer: %w", err)
	}

	payer := proposer
	if params.Payer != "" {
		payer, err = flow.HexToAddress(params.Payer)
		if err != nil {
			return flow.Transaction{}, fmt.Errorf("invalid payer: %w", err)
		}
	}

	b := flow.NewTransactionBuilder().
		Script(params.Script).
		GasLimit(params.GasLimit).
		Payer(payer)

	// the reference block and the proposal key are looked up concurrently
	g, gCtx := errgroup.WithContext(ctx)
	var latestSealed *flow.Identifier

	if params.RefBlock != "" {
		b.ReferenceBlockIDHex(params.RefBlock)
	} else {
		g.Go(func() error {
			header, err := api.GetLatestBlockHeader(gCtx, true)
			if err != nil {
				return fmt.Errorf("could not get latest sealed block: %w", err)
			}
			latestSealed = &header.ID
			return nil
		})
	}

	sequenceNumber := uint64(params.SequenceNumber)
	if params.SequenceNumber < 0 {
		g.Go(func() error {
			account, err := api.GetAccountAtLatestBlock(gCtx, proposer)
			if err != nil {
				return fmt.Errorf("could not get proposer account: %w", err)
			}
			key, err := account.Key(params.ProposerKeyIndex)
			if err != nil {
				return err
			}
			sequenceNumber = key.SequenceNumber
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return flow.Transaction{}, err
	}
	if latestSealed != nil {
		b.ReferenceBlockID(*latestSealed)
	}
	b.ProposalKey(proposer, params.ProposerKeyIndex, sequenceNumber)

	for i, arg := range params.Arguments {
		value, err := jsoncdc.Decode(nil, []byte(arg))
		if err != nil {
			return flow.Transaction{}, fmt.Errorf("invalid argument %d: %w", i, err)
		}
		b.Argument(value)
	}

	for _, authorizer := range params.Authorizers {
		b.AuthorizerHex(authorizer)
	}

	tx, err := b.Build()
	if err != nil {
		return flow.Transaction{}, err
	}
	return *tx, nil
}

// signTransaction adds a payload or envelope signature of the given key. The
// auto role signs the envelope for the payer and the payload otherwise.
func signTransaction(tx flow.Transaction, address flow.Address, keyIndex uint32, signer fcrypto.Signer, role string) (flow.Transaction, error) {
	if role == roleAuto {
		role = rolePayload
		if address == tx.Payer {
			role = roleEnvelope
		}
	}

	switch role {
	case rolePayload:
		return tx.SignPayload(address, keyIndex, signer)
	case roleEnvelope:
		return tx.SignEnvelope(address, keyIndex, signer)
	default:
		return flow.Transaction{}, fmt.Errorf("unknown signature role %q", role)
	}
}

func readVoucher(stdin io.Reader, path string) (flow.Transaction, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return flow.Transaction{}, err
		}
		defer f.Close()
		r = f
	}

	var voucher flow.Voucher
	if err := json.NewDecoder(r).Decode(&voucher); err != nil {
		return flow.Transaction{}, fmt.Errorf("could not decode voucher: %w", err)
	}

	return voucher.Transaction()
}

func writeVoucher(stdout io.Writer, path string, tx flow.Transaction) error {
	voucher, err := flow.VoucherFromTransaction(tx)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(voucher, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode voucher: %w", err)
	}
	b = append(b, '\n')

	if path == "-" {
		_, err = stdout.Write(b)
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
