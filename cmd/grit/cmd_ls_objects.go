package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/technoweenie/grit/pkg/object"
)

func newLsObjectsCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "ls-objects",
		Short: "List every loose object hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := env.openStore(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return store.Walk(func(h object.Hash) error {
				_, err := fmt.Fprintln(out, h)
				return err
			})
		},
	}
}
