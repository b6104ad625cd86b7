package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/forge-ai/textforge/internal/dispatch"
	"github.com/spf13/cobra"
)

var providersJSON bool

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the configured providers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		list := svc.Providers()
		def := svc.DefaultProvider()
		if providersJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Default   string          `json:"default"`
				Providers []dispatch.Info `json:"providers"`
			}{def, list})
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tMODEL\t")
		for _, p := range list {
			marker := ""
			if p.ID == def {
				marker = "(default)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Model, marker)
		}
		return tw.Flush()
	},
}

func init() {
	providersCmd.Flags().BoolVar(&providersJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(providersCmd)
}
