package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/technoweenie/grit/pkg/object"
)

func newCatFileCmd(env *cliEnv) *cobra.Command {
	var showType, showSize, pretty bool

	cmd := &cobra.Command{
		Use:   "cat-file (-t | -s | -p) <hash>",
		Short: "Print an object's type, size or content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := object.ParseHash(args[0])
			if err != nil {
				return fmt.Errorf("cat-file: %w", err)
			}
			store, _, err := env.openStore(cmd)
			if err != nil {
				return err
			}
			obj, err := store.Get(h)
			if err != nil {
				return fmt.Errorf("cat-file: %w", err)
			}

			out := cmd.OutOrStdout()
			switch {
			case showType:
				fmt.Fprintln(out, obj.Type)
			case showSize:
				fmt.Fprintln(out, obj.Size())
			case pretty:
				_, err = out.Write(obj.Data)
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&showType, "type", "t", false, "show the object type")
	cmd.Flags().BoolVarP(&showSize, "size", "s", false, "show the object size")
	cmd.Flags().BoolVarP(&pretty, "print", "p", false, "print the object content")
	cmd.MarkFlagsMutuallyExclusive("type", "size", "print")
	cmd.MarkFlagsOneRequired("type", "size", "print")
	return cmd
}
