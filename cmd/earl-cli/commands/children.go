package commands

import (
	"fmt"

	"chatbot-backend/lib/dom"
	"chatbot-backend/lib/htmlutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var childrenSkipText bool

func init() {
	childrenCmd.Flags().BoolVar(&childrenSkipText, "skip-text", false, "Hide text nodes from the listing, indices are unchanged.")
	rootCmd.AddCommand(childrenCmd)
}

var childrenCmd = &cobra.Command{
	Use:   "children <url> [path]",
	Short: "Lists the children of the node at a path (the document root by default) with the indices a path step would use.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := getEnv(cmd.Context())
		e, err := openURL(env.Client, args[0])
		if err != nil {
			return err
		}
		root, err := e.FetchDOM(cmd.Context())
		if err != nil {
			return err
		}

		children := root
		if len(args) == 2 {
			path, err := dom.ParsePath([]byte(args[1]))
			if err != nil {
				return err
			}
			node, err := dom.Stroll(env.Tel, e.Redacted(), env.Config.Debug, root, path)
			if err != nil {
				return err
			}
			if node == nil {
				return fmt.Errorf("optional step did not match")
			}
			children = node.Children
		}

		t := newTable()
		t.AppendHeader(table.Row{"Index", "Kind", "Node", "Text"})
		t.AppendRows(childRows(children, childrenSkipText))
		t.Render()
		return nil
	},
}

func childRows(children []dom.Node, skipText bool) []table.Row {
	rows := []table.Row{}
	for i, child := range children {
		if skipText && child.Kind() == dom.KindText {
			continue
		}
		text := truncate(htmlutil.Text(child), 40)
		rows = append(rows, table.Row{i, child.Kind().String(), dom.Describe(child), text})
	}
	return rows
}
