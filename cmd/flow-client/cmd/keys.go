package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/onflow/crypto"
	"github.com/spf13/cobra"

	fcrypto "github.com/onflow/flow-client-go/crypto"
	"github.com/onflow/flow-client-go/model/flow"
)

var (
	flagKeyType string
	flagSeed    string
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage account keys",
}

var keysGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new account key pair",
	Run:   runKeysGenerate,
}

func init() {
	keysGenerateCmd.Flags().StringVar(&flagKeyType, "key-type", fcrypto.KeyTypeECDSA_P256_SHA3_256.String(),
		"signature and hash algorithm of the key")
	keysGenerateCmd.Flags().StringVar(&flagSeed, "seed", "",
		"hex encoded seed of at least 32 bytes, random if empty")

	keysCmd.AddCommand(keysGenerateCmd)
}

func runKeysGenerate(cmd *cobra.Command, _ []string) {
	keyType, err := fcrypto.ParseKeyType(flagKeyType)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid key type")
	}

	seed, err := keySeed(flagSeed)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid seed")
	}

	sk, err := fcrypto.GeneratePrivateKey(keyType, seed)
	if err != nil {
		log.Fatal().Err(err).Msg("could not generate key")
	}

	err = printKey(cmd.OutOrStdout(), keyType, sk)
	if err != nil {
		log.Fatal().Err(err).Msg("could not encode account key")
	}
}

func keySeed(h string) ([]byte, error) {
	if h == "" {
		seed := make([]byte, crypto.KeyGenSeedMinLen)
		if _, err := rand.Read(seed); err != nil {
			return nil, fmt.Errorf("could not read random seed: %w", err)
		}
		return seed, nil
	}

	seed, err := hex.DecodeString(h)
	if err != nil {
		return nil, fmt.Errorf("could not decode seed: %w", err)
	}
	if len(seed) < crypto.KeyGenSeedMinLen {
		return nil, fmt.Errorf("seed must be at least %d bytes, got %d", crypto.KeyGenSeedMinLen, len(seed))
	}
	return seed, nil
}

// printKey writes the key pair and the full weight account key encoding
// expected by account creation transactions.
func printKey(w io.Writer, keyType fcrypto.KeyType, sk crypto.PrivateKey) error {
	accountKey, err := flow.EncodeAccountKey(flow.AccountKey{
		PublicKey: sk.PublicKey(),
		SigAlgo:   keyType.SigningAlgorithm(),
		HashAlgo:  keyType.HashingAlgorithm(),
		Weight:    flow.AccountKeyWeightThreshold,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Key type:    %s\n", keyType)
	fmt.Fprintf(w, "Private key: %x\n", sk.Encode())
	fmt.Fprintf(w, "Public key:  %x\n", sk.PublicKey().Encode())
	fmt.Fprintf(w, "Account key: %x\n", accountKey)
	return nil
}
