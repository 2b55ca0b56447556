package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var fetchJSON bool

func init() {
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "Only accept a json response and pretty print it.")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <url> [--json]",
	Short: "Fetches a url and prints the body.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := getEnv(cmd.Context())
		e, err := openURL(env.Client, args[0])
		if err != nil {
			return err
		}

		if !fetchJSON {
			body, err := e.FetchText(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(body)
			return nil
		}

		var out any
		found, err := e.FetchJSONWithError(cmd.Context(), &out)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%s did not respond with json", e.Redacted())
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	},
}
