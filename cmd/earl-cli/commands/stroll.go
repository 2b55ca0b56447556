package commands

import (
	"fmt"
	"net/url"

	"chatbot-backend/lib/dom"
	"chatbot-backend/lib/htmlutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	strollAnchors  bool
	strollMarkdown bool
)

func init() {
	strollCmd.Flags().BoolVar(&strollAnchors, "anchors", false, "List the links under the matched node instead of its text.")
	strollCmd.Flags().BoolVar(&strollMarkdown, "markdown", false, "Print the matched node as markdown, the way a reply would show it.")
	rootCmd.AddCommand(strollCmd)
}

var strollCmd = &cobra.Command{
	Use:   "stroll <url> <path>",
	Short: "Walks a page along a json5 path, ex. '[[1, \"html\"], [1, \"body\"]]', and prints the text of the node it ends on.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := getEnv(cmd.Context())
		path, err := dom.ParsePath([]byte(args[1]))
		if err != nil {
			return err
		}
		e, err := openURL(env.Client, args[0])
		if err != nil {
			return err
		}
		root, err := e.FetchDOM(cmd.Context())
		if err != nil {
			return err
		}

		node, err := dom.Stroll(env.Tel, e.Redacted(), env.Config.Debug, root, path)
		if err != nil {
			return err
		}
		if node == nil {
			fmt.Println("optional step did not match, nothing found")
			return nil
		}

		base, err := url.Parse(e.String())
		if err != nil {
			return err
		}

		switch {
		case strollMarkdown:
			origin := url.URL{Scheme: base.Scheme, Host: base.Host}
			md, err := htmlutil.Markdown(cmd.Context(), origin.String(), node)
			if err != nil {
				return err
			}
			fmt.Println(md)
			return nil
		case !strollAnchors:
			fmt.Println(htmlutil.Text(node))
			return nil
		}

		t := newTable()
		t.AppendHeader(table.Row{"Name", "Href"})
		for _, anchor := range htmlutil.Anchors(cmd.Context(), base, node) {
			t.AppendRow(table.Row{anchor.Name, anchor.Href})
		}
		t.Render()
		return nil
	},
}
