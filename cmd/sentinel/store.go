package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [ticker]",
	Short: "List stored analyses of a ticker, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		rec, err := openRecorder(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer rec.Close()

		records, err := rec.History(args[0], limit)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		if len(records) == 0 {
			fmt.Printf("No stored analyses for %s\n", strings.ToUpper(args[0]))
			return nil
		}
		for _, r := range records {
			mos := "n/a"
			if r.MarginOfSafety != nil {
				mos = fmt.Sprintf("%+.1f%%", *r.MarginOfSafety*100)
			}
			fmt.Printf("%s  %s  %-8s %2.0f/%.0f  MoS %s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Signal, r.Score, r.MaxScore, mos)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		rec, err := openRecorder(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer rec.Close()

		r, err := rec.Get(args[0])
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}
		if format == "json" {
			out, err := json.MarshalIndent(r, "", "  ")
			if err != nil {
				return fmt.Errorf("encode record: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}
		fmt.Printf("Recorded %s\n\n", r.CreatedAt.Format("2006-01-02 15:04:05 MST"))
		if err := printReport(r.Report, format); err != nil {
			return err
		}
		if v := r.Verdict; v != nil {
			fmt.Printf("\nModel verdict: %s (confidence %.0f)\n%s\n", strings.ToUpper(string(v.Signal)), v.Confidence, v.Reasoning)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := openRecorder(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer rec.Close()

		if err := rec.Delete(args[0]); err != nil {
			return fmt.Errorf("delete %s: %w", args[0], err)
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "maximum number of analyses to list")
	showCmd.Flags().String("format", "text", "output format: text, json, markdown or html")
}
