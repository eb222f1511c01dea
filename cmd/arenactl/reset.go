package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/arena/internal/admin"
)

var errResetNotConfirmed = errors.New("reset deletes every row; pass --yes to confirm")

func (a *app) newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all competition and athlete data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return errResetNotConfirmed
			}

			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			r := &admin.Resetter{DB: pool}
			if err := r.ResetAll(cmd.Context()); err != nil {
				return err
			}
			slog.Info("data reset", "tables", len(admin.Tables()))
			return nil
		},
	}

	cmd.Flags().Bool("yes", false, "Confirm the reset")
	return cmd
}
