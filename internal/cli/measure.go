package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/barline/internal/core/render"
	"github.com/example/barline/internal/ports/primary"
	"github.com/example/barline/internal/wire"
)

// MeasureCmd returns the measure command with its subcommands.
func MeasureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Record and inspect per-measure confidence",
	}
	cmd.AddCommand(measureRecordCmd(), measureListCmd(), measureHistoryCmd())
	return cmd
}

func measureRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record [song-id]",
		Short: "Record confidence for one measure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid song id: %s", args[0])
			}

			page, _ := cmd.Flags().GetInt("page")
			line, _ := cmd.Flags().GetInt("line")
			measureNum, _ := cmd.Flags().GetInt("measure")
			confidence, _ := cmd.Flags().GetFloat64("confidence")
			notes, _ := cmd.Flags().GetString("notes")
			practicer, _ := cmd.Flags().GetString("practicer")
			bpm, _ := cmd.Flags().GetInt64("bpm")
			hands, _ := cmd.Flags().GetString("hands")

			saved, err := wire.MeasureService().RecordPractice(cmd.Context(), primary.RecordPracticeRequest{
				SongID:     songID,
				Page:       page,
				Line:       line,
				Measure:    measureNum,
				Confidence: confidence,
				Notes:      notes,
				Practicer:  practicer,
				BPM:        bpm,
				Hands:      hands,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Recorded %s at %d-%d-%d (%s, %s)\n",
				confidenceCell(saved.Confidence),
				saved.Page, saved.Line, saved.Measure, saved.Practicer, saved.Hands)
			return nil
		},
	}
	cmd.Flags().Int("page", 0, "page number")
	cmd.Flags().Int("line", 0, "line number on the page")
	cmd.Flags().Int("measure", 0, "measure number in the line")
	cmd.Flags().Float64("confidence", 0, "confidence from 0 to 10")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().String("practicer", "", "who practiced (defaults to User)")
	cmd.Flags().Int64("bpm", 0, "tempo in beats per minute")
	cmd.Flags().String("hands", "", "left, right or both (defaults to both)")
	_ = cmd.MarkFlagRequired("page")
	_ = cmd.MarkFlagRequired("line")
	_ = cmd.MarkFlagRequired("measure")
	_ = cmd.MarkFlagRequired("confidence")
	return cmd
}

func measureListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [song-id]",
		Short: "List current confidence records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid song id: %s", args[0])
			}

			practicer, _ := cmd.Flags().GetString("practicer")
			hands, _ := cmd.Flags().GetString("hands")

			measures, err := wire.MeasureService().GetCurrent(cmd.Context(), primary.CurrentQuery{
				SongID:    songID,
				Practicer: practicer,
				Hands:     hands,
			})
			if err != nil {
				return err
			}

			if len(measures) == 0 {
				fmt.Println("No confidence records found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CELL\tCONFIDENCE\tPRACTICER\tHANDS\tBPM\tNOTES")
			fmt.Fprintln(w, "----\t----------\t---------\t-----\t---\t-----")
			for _, m := range measures {
				bpm := "-"
				if m.BPM != 0 {
					bpm = strconv.FormatInt(m.BPM, 10)
				}
				fmt.Fprintf(w, "%d-%d-%d\t%s\t%s\t%s\t%s\t%s\n",
					m.Page, m.Line, m.Measure,
					confidenceCell(m.Confidence),
					m.Practicer, m.Hands, bpm, m.Notes)
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("practicer", "", "filter by practicer")
	cmd.Flags().String("hands", "", "filter by hands")
	return cmd
}

func measureHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [song-id]",
		Short: "Show superseded records for one cell, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid song id: %s", args[0])
			}

			page, _ := cmd.Flags().GetInt("page")
			line, _ := cmd.Flags().GetInt("line")
			measureNum, _ := cmd.Flags().GetInt("measure")
			practicer, _ := cmd.Flags().GetString("practicer")
			hands, _ := cmd.Flags().GetString("hands")

			entries, err := wire.MeasureService().GetHistory(cmd.Context(), primary.HistoryQuery{
				SongID:    songID,
				Page:      page,
				Line:      line,
				Measure:   measureNum,
				Practicer: practicer,
				Hands:     hands,
			})
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No history for this cell")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ARCHIVED\tCONFIDENCE\tPRACTICER\tHANDS\tNOTES")
			fmt.Fprintln(w, "--------\t----------\t---------\t-----\t-----")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.ArchivedAt.Format("2006-01-02 15:04"),
					confidenceCell(e.Confidence),
					e.Practicer, e.Hands, e.Notes)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int("page", 0, "page number")
	cmd.Flags().Int("line", 0, "line number on the page")
	cmd.Flags().Int("measure", 0, "measure number in the line")
	cmd.Flags().String("practicer", "", "filter by practicer")
	cmd.Flags().String("hands", "", "filter by hands")
	_ = cmd.MarkFlagRequired("page")
	_ = cmd.MarkFlagRequired("line")
	_ = cmd.MarkFlagRequired("measure")
	return cmd
}

// confidenceCell formats a confidence value in its grid color.
func confidenceCell(c float64) string {
	rgb := render.ConfidenceColor(c)
	return color.RGB(int(rgb.R), int(rgb.G), int(rgb.B)).Sprintf("%.1f", c)
}
