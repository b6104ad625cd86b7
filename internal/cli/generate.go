package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/forge-ai/textforge/internal/api"
	"github.com/forge-ai/textforge/internal/textgen"
	"github.com/spf13/cobra"
)

// Flag variables for generate command
var (
	genModel    string
	genData     string
	genDataFile string
	genJSON     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <instruction...>",
	Short: "Run one generation and print the result",
	Long: `Run one generation and print the result.

The instruction is taken from the arguments. Subject text comes from
--data, or from --data-file ("-" reads stdin).

Examples:
  textforge generate Summarize this --data "long text"
  textforge generate --model anthropic "Write a haiku about Go"
  cat notes.txt | textforge generate --data-file - "Extract action items"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerateCmd,
}

type generateJSONOutput struct {
	Result   string `json:"result"`
	Provider string `json:"provider"`
	Model    string `json:"llm_model"`
}

func runGenerateCmd(cmd *cobra.Command, args []string) error {
	if genData != "" && genDataFile != "" {
		return errors.New("--data and --data-file are mutually exclusive")
	}

	data := genData
	if genDataFile != "" {
		b, err := readDataFile(cmd.InOrStdin(), genDataFile)
		if err != nil {
			return err
		}
		data = string(b)
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	res, err := svc.Generate(cmd.Context(), textgen.Request{
		Instruction: strings.Join(args, " "),
		SubjectText: data,
		ProviderID:  genModel,
	})
	if err != nil {
		return fmt.Errorf("%s (status %d)", api.MessageFor(err), api.StatusFor(err))
	}

	if genJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(generateJSONOutput{Result: res.Text, Provider: res.Provider, Model: res.Model})
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return nil
}

func readDataFile(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	return b, nil
}

func init() {
	generateCmd.Flags().StringVarP(&genModel, "model", "m", "", "Provider id (defaults to DEFAULT_PROVIDER)")
	generateCmd.Flags().StringVarP(&genData, "data", "d", "", "Subject text the instruction applies to")
	generateCmd.Flags().StringVarP(&genDataFile, "data-file", "f", "", "Read subject text from a file, or - for stdin")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(generateCmd)
}
