package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/fsutil/pkg/fsutil"
)

// settings collects what the persistent flags and config file resolve to.
type settings struct {
	configFile string
	tempRoot   string
	logLevel   string

	cfg fsutil.Config
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	s := &settings{}

	cmd := &cobra.Command{
		Use:   "fsutil",
		Short: "Portable filesystem lifecycle operations",
		Long: `fsutil exposes idempotent directory creation, recursive directory deletion,
file creation and removal, and scoped temporary directories that are always
cleaned up, with the same behaviour on POSIX and Windows.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.resolve(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&s.configFile, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&s.tempRoot, "temp-root", "", "Directory temporary directories are created in (default: system temp dir)")
	cmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")

	cmd.AddCommand(newVersionCommand())
	cmd.AddCommand(newExistsCommand())
	cmd.AddCommand(newMkdirCommand())
	cmd.AddCommand(newRmtreeCommand())
	cmd.AddCommand(newRmCommand())
	cmd.AddCommand(newTouchCommand())
	cmd.AddCommand(newTempdirCommand(s))

	return cmd
}

func (s *settings) resolve(cmd *cobra.Command) error {
	cfg := fsutil.DefaultConfig()
	if s.configFile != "" {
		loaded, err := fsutil.LoadConfig(s.configFile)
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", s.configFile, err)
		}
		cfg = loaded
	}
	if s.tempRoot != "" {
		cfg.TempRoot = s.tempRoot
	}
	if s.logLevel != "" {
		cfg.LogLevel = s.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := fsutil.LogLevelFromString(cfg.LogLevel)
	if err != nil {
		return err
	}
	fsutil.SetLogger(fsutil.NewLogger(cmd.ErrOrStderr(), level))
	s.cfg = cfg
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  `Print the version number of fsutil`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fsutil version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
