package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/onflow/cadence"
	jsoncdc "github.com/onflow/cadence/encoding/json"
	"github.com/spf13/cobra"

	"github.com/onflow/flow-client-go/model/values"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Run read-only Cadence scripts",
}

var scriptExecuteCmd = &cobra.Command{
	Use:   "execute",
	Short: "Execute a script against the latest sealed block and print its result",
	Run:   runScriptExecute,
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a JSON-Cadence value into plain JSON",
	Run:   runDecode,
}

func init() {
	scriptExecuteCmd.Flags().StringVar(&flagScript, "script", "", "path to the Cadence script")
	_ = scriptExecuteCmd.MarkFlagRequired("script")
	scriptExecuteCmd.Flags().StringArrayVar(&flagArguments, "arg", nil, "JSON-Cadence encoded argument, can be repeated")

	decodeCmd.Flags().StringVarP(&flagInput, "input", "i", "-", "JSON-Cadence input file, - for stdin")

	scriptCmd.AddCommand(scriptExecuteCmd)
}

func runScriptExecute(cmd *cobra.Command, _ []string) {
	script, err := os.ReadFile(flagScript)
	if err != nil {
		log.Fatal().Err(err).Msg("could not read script")
	}

	arguments := make([]cadence.Value, len(flagArguments))
	for i, arg := range flagArguments {
		arguments[i], err = jsoncdc.Decode(nil, []byte(arg))
		if err != nil {
			log.Fatal().Err(err).Int("argument", i).Msg("invalid argument")
		}
	}

	c, err := newClient()
	if err != nil {
		log.Fatal().Err(err).Msg("could not create client")
	}
	defer c.Close()

	value, err := c.ExecuteScriptAtLatestBlock(cmd.Context(), script, arguments)
	if err != nil {
		log.Fatal().Err(err).Msg("could not execute script")
	}

	if err := printValue(cmd.OutOrStdout(), value); err != nil {
		log.Fatal().Err(err).Msg("could not print result")
	}
}

func runDecode(cmd *cobra.Command, _ []string) {
	var (
		b   []byte
		err error
	)
	if flagInput == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(flagInput)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("could not read input")
	}

	value, err := jsoncdc.Decode(nil, b)
	if err != nil {
		log.Fatal().Err(err).Msg("could not decode JSON-Cadence value")
	}

	if err := printValue(cmd.OutOrStdout(), value); err != nil {
		log.Fatal().Err(err).Msg("could not print value")
	}
}

// printValue writes the plain form of a cadence value as indented JSON.
func printValue(w io.Writer, value cadence.Value) error {
	plain, err := values.DecodeAny(value)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(jsonValue(plain), "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode value: %w", err)
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// jsonValue converts the dictionaries of a plain value to string keyed maps
// and big integers to strings.
func jsonValue(v interface{}) interface{} {
	switch v := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for key, value := range v {
			m[fmt.Sprint(key)] = jsonValue(value)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(v))
		for key, value := range v {
			m[key] = jsonValue(value)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(v))
		for i, value := range v {
			s[i] = jsonValue(value)
		}
		return s
	case *big.Int:
		return v.String()
	default:
		return v
	}
}
