package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/barline/internal/wire"
)

// SongCmd returns the song command with its subcommands.
func SongCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "song",
		Short: "Browse songs and books",
	}
	cmd.AddCommand(songListCmd(), songShowCmd(), bookListCmd())
	return cmd
}

func songListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all songs",
		RunE: func(cmd *cobra.Command, args []string) error {
			songs, err := wire.SongService().ListSongs(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list songs: %w", err)
			}

			if len(songs) == 0 {
				fmt.Println("No songs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tBOOK\tFIRST PAGE")
			fmt.Fprintln(w, "--\t-----\t----\t----------")
			for _, s := range songs {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", s.SongID, s.Title, s.BookID, s.FirstPagePosition)
			}
			return w.Flush()
		},
	}
}

func songShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [song-id]",
		Short: "Show a song and its page layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid song id: %s", args[0])
			}

			song, err := wire.SongService().GetSong(cmd.Context(), songID)
			if err != nil {
				return err
			}

			fmt.Printf("%s (song %d, book %d, first page %s)\n",
				song.Title, song.SongID, song.BookID, song.FirstPagePosition)

			l, err := wire.LayoutService().GetLayout(cmd.Context(), songID)
			if err != nil {
				return err
			}
			if len(l.Pages) == 0 {
				fmt.Println("No page layout recorded")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PAGE\tLINES\tSTARTS AT MEASURE")
			fmt.Fprintln(w, "----\t-----\t-----------------")
			for _, p := range l.Pages {
				fmt.Fprintf(w, "%d\t%v\t%d\n", p.PageNumber, p.Lines, p.StartingMeasure)
			}
			return w.Flush()
		},
	}
}

func bookListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List all books",
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := wire.SongService().ListBooks(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list books: %w", err)
			}

			if len(books) == 0 {
				fmt.Println("No books found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCOMPOSER")
			fmt.Fprintln(w, "--\t-----\t--------")
			for _, b := range books {
				composer := b.Composer
				if composer == "" {
					composer = "-"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", b.BookID, b.Title, composer)
			}
			return w.Flush()
		},
	}
}
