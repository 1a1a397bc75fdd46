package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/balkashynov/lifeos/internal/app"
	"github.com/balkashynov/lifeos/internal/config"
	"github.com/balkashynov/lifeos/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	homeFlag    string
	profileFlag string
)

var rootCmd = &cobra.Command{
	Use:   "lifeos",
	Short: "A terminal life OS: focus timer, tasks, habits and XP",
	Long: `lifeos keeps your day in the terminal.
Run focus sessions, tick off tasks and habits, and level up as you go.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// withSession wraps a command so it runs with an open session that is closed
// when the command returns.
func withSession(fn func(*cobra.Command, []string, *app.Session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if homeFlag != "" {
			cfg.Home = homeFlag
		}
		if profileFlag != "" {
			cfg.Profile = profileFlag
		}

		logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		s, err := app.Open(cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := s.Close(); err != nil {
				logger.Warn("close session", "error", err)
			}
		}()

		return fn(cmd, args, s)
	}
}

// parseID parses a task or habit ID argument.
func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid ID '%s'", arg)
	}
	return uint(id), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lifeos %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "Data directory (default $LIFEOS_HOME or ~/.lifeos)")
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "Profile ID (default $LIFEOS_PROFILE or \"default\")")

	rootCmd.SetHelpCommand(helpCmd)

	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(trashCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(habitCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(txCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(versionCmd)
}
