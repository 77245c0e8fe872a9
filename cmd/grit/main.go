package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/technoweenie/grit/pkg/config"
	"github.com/technoweenie/grit/pkg/object"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cliEnv resolves global settings from flags, GRIT_* environment variables
// and defaults, in that order.
type cliEnv struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GRIT")
	v.AutomaticEnv()
	v.SetDefault("objects", filepath.Join(".git", "objects"))

	root := &cobra.Command{
		Use:           "grit",
		Short:         "Inspect and write loose git objects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.String("objects", "", "objects directory (env GRIT_OBJECTS, default .git/objects)")
	flags.String("config", "", "TOML settings file (env GRIT_CONFIG)")
	flags.BoolP("verbose", "v", false, "log debug events to stderr")
	for _, name := range []string{"objects", "config", "verbose"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	env := &cliEnv{v: v}
	root.AddCommand(newVersionCmd())
	root.AddCommand(newHashObjectCmd(env))
	root.AddCommand(newCatFileCmd(env))
	root.AddCommand(newLsObjectsCmd(env))
	root.AddCommand(newVerifyCmd(env))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "grit 0.1.0-dev")
		},
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openStore loads settings and opens the configured objects directory.
func (e *cliEnv) openStore(cmd *cobra.Command) (*object.Store, *config.Config, error) {
	cfg, err := config.Load(e.v.GetString("config"))
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), e.v.GetBool("verbose"))
	root := e.v.GetString("objects")
	logger.Debug("opening object store", "root", root)
	return object.NewStore(root, cfg.StoreOptions(logger)...), cfg, nil
}
