package commands

import (
	"fmt"

	"chatbot-backend/lib/earl"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	playlistKey   string
	playlistPages int
)

func init() {
	playlistCmd.Flags().StringVar(&playlistKey, "key", "", "YouTube Data API key, overrides youtube_key from the config.")
	playlistCmd.Flags().IntVar(&playlistPages, "pages", 1, "Maximum number of pages to fetch.")
	rootCmd.AddCommand(playlistCmd)
}

var playlistCmd = &cobra.Command{
	Use:   "playlist <playlist id> [--key <api key>] [--pages <n>]",
	Short: "Lists the videos of a YouTube playlist.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := getEnv(cmd.Context())
		key := playlistKey
		if key == "" {
			key = env.Config.YouTubeKey
		}
		playlist, err := earl.NewPlaylist(env.Client, key)
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Position", "Title", "Video", "Published"})
		total := 0
		for page := 0; page < playlistPages; page++ {
			items, err := playlist.FetchPlaylistByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, item := range items.Items {
				t.AppendRow(table.Row{
					item.Snippet.Position,
					truncate(item.Snippet.Title, 60),
					item.Snippet.ResourceID.VideoID,
					item.Snippet.PublishedAt.Format("2006-01-02"),
				})
			}
			total = items.PageInfo.TotalResults
			if items.NextPageToken == "" {
				break
			}
			playlist.SetPageToken(items.NextPageToken)
		}
		t.AppendFooter(table.Row{"", fmt.Sprintf("%d videos in playlist", total), "", ""})
		t.Render()
		return nil
	},
}
