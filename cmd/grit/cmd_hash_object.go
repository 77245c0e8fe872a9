package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/technoweenie/grit/pkg/object"
)

func newHashObjectCmd(env *cliEnv) *cobra.Command {
	var (
		typeName string
		write    bool
		stdin    bool
	)

	cmd := &cobra.Command{
		Use:   "hash-object [file...]",
		Short: "Compute object hashes, optionally writing the objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !stdin && len(args) == 0 {
				return fmt.Errorf("hash-object: no input (pass files or --stdin)")
			}
			objType, err := object.ParseObjectType(typeName)
			if err != nil {
				return fmt.Errorf("hash-object: %w", err)
			}

			var store *object.Store
			if write {
				store, _, err = env.openStore(cmd)
				if err != nil {
					return err
				}
			}

			hashOne := func(r io.Reader) (object.Hash, error) {
				if store != nil {
					return store.Put(objType, r, object.UnknownSize)
				}
				return object.ComputeHash(objType, r, object.UnknownSize)
			}

			out := cmd.OutOrStdout()
			if stdin {
				h, err := hashOne(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("hash-object: stdin: %w", err)
				}
				fmt.Fprintln(out, h)
			}
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("hash-object: %w", err)
				}
				h, err := hashOne(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("hash-object: %s: %w", path, err)
				}
				fmt.Fprintln(out, h)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "blob", "object type: blob, tree, commit or tag")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the object into the store")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "read the object from standard input")
	return cmd
}
