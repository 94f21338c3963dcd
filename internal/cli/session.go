package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/barline/internal/ports/primary"
	"github.com/example/barline/internal/wire"
)

// SessionCmd returns the session command with its subcommands.
func SessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Log and list whole-passage practice sessions",
	}
	cmd.AddCommand(sessionLogCmd(), sessionListCmd())
	return cmd
}

func sessionLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [song-id]",
		Short: "Log a practice session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid song id: %s", args[0])
			}

			from, _ := cmd.Flags().GetInt64("from")
			to, _ := cmd.Flags().GetInt64("to")
			sessionType, _ := cmd.Flags().GetString("type")
			notes, _ := cmd.Flags().GetString("notes")
			hands, _ := cmd.Flags().GetString("hands")
			practicers, _ := cmd.Flags().GetString("practicers")
			minutes, _ := cmd.Flags().GetInt64("minutes")

			logged, err := wire.SessionService().LogSession(cmd.Context(), primary.LogSessionRequest{
				SongID:          songID,
				FromMeasure:     from,
				ToMeasure:       to,
				SessionType:     sessionType,
				Notes:           notes,
				Hands:           hands,
				Practicers:      practicers,
				DurationMinutes: minutes,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Logged session %d\n", logged.ID)
			return nil
		},
	}
	cmd.Flags().Int64("from", 0, "first absolute measure practiced")
	cmd.Flags().Int64("to", 0, "last absolute measure practiced")
	cmd.Flags().String("type", "", "session type")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().String("hands", "", "left, right or both")
	cmd.Flags().String("practicers", "", "who practiced")
	cmd.Flags().Int64("minutes", 0, "session duration in minutes")
	return cmd
}

func sessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [song-id]",
		Short: "List a song's practice sessions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid song id: %s", args[0])
			}

			sessions, err := wire.SessionService().ListSessions(cmd.Context(), songID)
			if err != nil {
				return err
			}

			if len(sessions) == 0 {
				fmt.Println("No practice sessions found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tMEASURES\tTYPE\tMINUTES\tNOTES")
			fmt.Fprintln(w, "----\t--------\t----\t-------\t-----")
			for _, s := range sessions {
				measures := "whole song"
				if s.FromMeasure != 0 || s.ToMeasure != 0 {
					measures = fmt.Sprintf("%d-%d", s.FromMeasure, s.ToMeasure)
				}
				minutes := "-"
				if s.DurationMinutes != 0 {
					minutes = strconv.FormatInt(s.DurationMinutes, 10)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					s.PracticeTime.Format("2006-01-02 15:04"),
					measures, s.SessionType, minutes, s.Notes)
			}
			return w.Flush()
		},
	}
}
