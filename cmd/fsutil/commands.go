package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/fsutil/pkg/fsutil"
	"github.com/arthur-debert/fsutil/pkg/fsutil/filesystem"
)

// opsFor returns the Ops a mutating command should use. In dry-run mode
// the returned report func prints what would have changed.
func opsFor(cmd *cobra.Command, dryRun bool) (*fsutil.Ops, func()) {
	if !dryRun {
		return fsutil.New(nil), func() {}
	}
	dry := filesystem.NewDryRunFS(nil)
	return fsutil.New(dry), func() {
		for _, a := range dry.Actions() {
			fmt.Fprintf(cmd.OutOrStdout(), "would %s %s\n", a.Op, a.Name)
		}
	}
}

func parsePaths(args []string) ([]fsutil.Path, error) {
	paths := make([]fsutil.Path, 0, len(args))
	for _, arg := range args {
		p, err := fsutil.PathFromString(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func newExistsCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "exists [path...]",
		Short: "Report whether paths exist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := parsePaths(args)
			if err != nil {
				return err
			}
			missing := 0
			for _, p := range paths {
				ok, err := fsutil.Exists(p)
				if err != nil {
					return err
				}
				if !ok {
					missing++
				}
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\n", p, ok)
				}
			}
			if quiet && missing > 0 {
				return fmt.Errorf("%d of %d paths do not exist", missing, len(paths))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print nothing; fail if any path is missing")

	return cmd
}

func newMkdirCommand() *cobra.Command {
	var parents, dryRun bool

	cmd := &cobra.Command{
		Use:   "mkdir [path...]",
		Short: "Create directories",
		Long: `Create directories. Parents given on the same command line are created
before their children; other ancestors must exist unless --parents is set.
Existing directories are not an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := parsePaths(args)
			if err != nil {
				return err
			}

			ops, report := opsFor(cmd, dryRun)
			defer report()

			if !parents {
				created, err := ops.CreateDirs(paths...)
				if !dryRun {
					for _, p := range created {
						fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", p)
					}
				}
				return err
			}

			for _, p := range paths {
				created, err := ops.CreateDirTree(p)
				if err != nil {
					return err
				}
				if created && !dryRun {
					fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", p)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "Create missing ancestors")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print what would be created without changing anything")

	return cmd
}

func newRmtreeCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rmtree [path...]",
		Short: "Recursively delete directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := parsePaths(args)
			if err != nil {
				return err
			}
			ops, report := opsFor(cmd, dryRun)
			defer report()

			for _, p := range paths {
				deleted, err := ops.DeleteDirTree(p)
				if err != nil {
					return err
				}
				if deleted && !dryRun {
					fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", p)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print what would be deleted without changing anything")

	return cmd
}

func newRmCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rm [file...]",
		Short: "Delete files",
		Long:  "Delete regular files. Directories are refused; use rmtree.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := parsePaths(args)
			if err != nil {
				return err
			}
			ops, report := opsFor(cmd, dryRun)
			defer report()

			for _, p := range paths {
				deleted, err := ops.DeleteFile(p)
				if err != nil {
					return err
				}
				if deleted && !dryRun {
					fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", p)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print what would be deleted without changing anything")

	return cmd
}

func newTouchCommand() *cobra.Command {
	var truncate bool

	cmd := &cobra.Command{
		Use:   "touch [file...]",
		Short: "Create files if they do not exist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := parsePaths(args)
			if err != nil {
				return err
			}
			for _, p := range paths {
				h, err := fsutil.OpenWritable(p, true, truncate, !truncate)
				if err != nil {
					return err
				}
				if err := fsutil.FileClose(h); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&truncate, "truncate", false, "Reset existing files to zero length")

	return cmd
}

func newTempdirCommand(s *settings) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "tempdir -- command [args...]",
		Short: "Run a command inside a temporary directory that is removed afterwards",
		Long: `Create a temporary directory, run the command with it as the working
directory and as TMPDIR, then delete the directory and everything the command
left in it. The directory path is also exported as FSUTIL_TEMPDIR.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, err := s.cfg.TempDirFactory(nil)
			if err != nil {
				return err
			}
			if prefix == "" {
				prefix = s.cfg.TempPrefix
			}

			dir, err := factory.Make(prefix)
			if err != nil {
				return err
			}
			defer dir.Close()

			// #nosec G204 -- the command is supplied by the operator
			child := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
			child.Dir = dir.Path().Native()
			child.Env = append(os.Environ(),
				"TMPDIR="+dir.Path().Native(),
				"FSUTIL_TEMPDIR="+dir.Path().Native(),
			)
			child.Stdin = cmd.InOrStdin()
			child.Stdout = cmd.OutOrStdout()
			child.Stderr = cmd.ErrOrStderr()

			if err := child.Run(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					return fmt.Errorf("command exited with status %d", exitErr.ExitCode())
				}
				return fmt.Errorf("failed to run %s: %w", args[0], err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Name prefix for the temporary directory (default from config)")

	return cmd
}
