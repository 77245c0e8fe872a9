package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCmd(env *cliEnv) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify loose object integrity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := env.openStore(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("jobs") {
				jobs = cfg.Objects.VerifyWorkers
			}

			report, err := store.Verify(cmd.Context(), jobs)
			if err != nil {
				return err
			}
			for _, bad := range report.Corrupt {
				fmt.Fprintf(cmd.ErrOrStderr(), "corrupt: %v\n", bad)
			}
			if !report.OK() {
				return fmt.Errorf("verify: %d of %d loose object(s) corrupt", len(report.Corrupt), report.Objects)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: verified %d loose object(s)\n", report.Objects)
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "parallel workers (default from config)")
	return cmd
}
