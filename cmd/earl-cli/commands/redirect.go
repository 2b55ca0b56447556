package commands

import (
	"context"
	"fmt"

	"chatbot-backend/lib/earl"
	"chatbot-backend/lib/settle"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(redirectCmd)
}

var redirectCmd = &cobra.Command{
	Use:   "redirect <url>...",
	Short: "Checks concurrently whether each url redirects.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := getEnv(cmd.Context())

		tasks, err := redirectTasks(env.Client, args)
		if err != nil {
			return err
		}
		outcomes := settle.All(cmd.Context(), env.Config.Concurrency, tasks...)

		t := newTable()
		t.AppendHeader(table.Row{"Url", "Result"})
		for _, o := range outcomes {
			t.AppendRow(table.Row{o.Source, describeRedirect(o)})
		}
		t.AppendFooter(table.Row{"", settle.Summarize(outcomes)})
		t.Render()
		return nil
	},
}

// redirectTasks opens one Earl per url, a conclusive check is Found and an
// inconclusive one is NotFound.
func redirectTasks(client *earl.Client, urls []string) ([]settle.Task[earl.Redirect], error) {
	tasks := make([]settle.Task[earl.Redirect], 0, len(urls))
	for _, raw := range urls {
		e, err := openURL(client, raw)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, settle.Task[earl.Redirect]{
			Source: e.Redacted(),
			Run: func(ctx context.Context) (earl.Redirect, bool, error) {
				redirect, err := e.CheckRedirect(ctx)
				return redirect, redirect.Known(), err
			},
		})
	}
	return tasks, nil
}

func describeRedirect(o settle.Outcome[earl.Redirect]) string {
	switch o.State {
	case settle.Found:
		return o.Value.String()
	case settle.NotFound:
		return "inconclusive"
	}
	return fmt.Sprintf("error: %v", o.Err)
}
