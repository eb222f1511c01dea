package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/arena/internal/core"
	"github.com/JonMunkholm/arena/internal/export"
)

func (a *app) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an athlete's statistics report",
		Example: "  arenactl export --athlete 5b9091c5-300f-5cee-bab9-ed7e9a42ef6c --format csv --out stats.csv\n" +
			"  arenactl export --athlete 5b9091c5-300f-5cee-bab9-ed7e9a42ef6c --out -",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			athleteID, _ := cmd.Flags().GetString("athlete")
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")

			exp, err := export.ForFormat(format, export.Options{FontPath: a.cfg.Export.FontPath})
			if err != nil {
				return err
			}

			svc, release, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			stats, err := svc.AthleteStatistics(cmd.Context(), athleteID)
			if err != nil {
				return err
			}
			tbl, err := core.HistoryTable(stats.History, 0)
			if err != nil {
				return err
			}
			doc := export.FromTable(core.StatisticsReportTitle+": "+stats.Athlete.Name, tbl)

			if out == "" {
				out = export.Filename("athlete-stats", exp)
			}
			w, closeOut, err := output(cmd, out)
			if err != nil {
				return err
			}
			if err := exp.Write(w, doc); err != nil {
				_ = closeOut()
				return fmt.Errorf("write report: %w", err)
			}
			if err := closeOut(); err != nil {
				return err
			}

			slog.Info("report exported", "athlete_id", athleteID, "format", exp.Extension(), "rows", len(doc.Rows), "out", out)
			return nil
		},
	}

	cmd.Flags().StringP("athlete", "a", "", "Athlete id (required)")
	cmd.Flags().StringP("format", "f", "pdf", "Report format: pdf or csv")
	cmd.Flags().StringP("out", "o", "", `Output file, "-" for stdout (default: athlete-stats.<format>)`)
	_ = cmd.MarkFlagRequired("athlete")
	return cmd
}
