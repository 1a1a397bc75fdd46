package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/lifeos/internal/app"
	"github.com/balkashynov/lifeos/internal/notify"
	"github.com/balkashynov/lifeos/internal/timer"
	"github.com/balkashynov/lifeos/internal/tui"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Run the focus timer",
	Long: `Open the interactive focus timer. The countdown is saved, so it keeps
going after you quit and is picked up again by the next lifeos command.

Examples:
  lifeos timer              # Interactive timer
  lifeos timer set 50       # Change the session length
  lifeos timer start -f     # Start and follow in this terminal`,
	Args: cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		sink := &tui.ProgramSink{}
		engine, err := s.Timer(app.Sinks{
			Notifier: sink,
			Display:  sink,
			Player:   bell(s, os.Stdout),
		})
		if err != nil {
			return err
		}
		return tui.RunTimerTUI(engine, sink)
	}),
}

// bell returns nil when sound is off so the engine keeps its silent player.
func bell(s *app.Session, w io.Writer) timer.Player {
	if !s.Config.Sound {
		return nil
	}
	return notify.NewBell(w)
}

// headlessTimer opens the engine with console sinks and recovers it.
func headlessTimer(cmd *cobra.Command, s *app.Session, display timer.Display) (*timer.Engine, error) {
	out := cmd.OutOrStdout()
	sinks := app.Sinks{
		Notifier: notify.NewConsole(out),
		Player:   bell(s, out),
		Display:  display,
	}
	engine, err := s.Timer(sinks)
	if err != nil {
		return nil, err
	}
	if err := engine.Recover(); err != nil {
		return nil, err
	}
	return engine, nil
}

var timerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start or resume the countdown",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		follow, _ := cmd.Flags().GetBool("follow")

		var display timer.Display
		if follow {
			display = notify.NewLineDisplay(cmd.OutOrStdout())
		}
		engine, err := headlessTimer(cmd, s, display)
		if err != nil {
			return err
		}
		if err := engine.Start(); err != nil {
			return err
		}

		st := engine.Snapshot()
		if !follow {
			fmt.Fprintf(cmd.OutOrStdout(), "⏱️  Focus started: %s left\n", st.Clock)
			return nil
		}
		return followTimer(engine)
	}),
}

// followTimer blocks until the session finishes or the user interrupts.
// Interrupting leaves the countdown running.
func followTimer(engine *timer.Engine) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	ticker := time.NewTicker(timer.TickInterval)
	defer ticker.Stop()

	// one extra tick after stopping lets the finish cues print
	stopped := false
	for {
		select {
		case <-sig:
			return nil
		case <-ticker.C:
			if stopped {
				return nil
			}
			stopped = !engine.Snapshot().State.Running
		}
	}
}

var timerPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the countdown",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		engine, err := headlessTimer(cmd, s, nil)
		if err != nil {
			return err
		}
		if err := engine.Pause(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "⏸️  Paused at %s\n", engine.Snapshot().Clock)
		return nil
	}),
}

var timerResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Stop and restore the full duration",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		engine, err := headlessTimer(cmd, s, nil)
		if err != nil {
			return err
		}
		if err := engine.Reset(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "↩️  Timer reset to %s\n", engine.Snapshot().Clock)
		return nil
	}),
}

var timerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current countdown",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		engine, err := headlessTimer(cmd, s, nil)
		if err != nil {
			return err
		}

		st := engine.Snapshot()
		state := "paused"
		if st.State.Running {
			state = "running"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "⏱️  %s (%s)\n", st.Clock, state)
		fmt.Fprintf(out, "Session length: %d min\n", st.State.DurationMinutes)
		if st.State.Running {
			fmt.Fprintf(out, "Ends at: %s\n", st.State.Deadline.Format("15:04:05"))
		}
		return nil
	}),
}

var timerSetCmd = &cobra.Command{
	Use:   "set [minutes]",
	Short: "Set the session length",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			return timer.ErrInvalidDuration
		}
		engine, err := headlessTimer(cmd, s, nil)
		if err != nil {
			return err
		}
		// the console notifier reports success and refusals
		_, err = engine.Configure(minutes)
		return err
	}),
}

func init() {
	timerStartCmd.Flags().BoolP("follow", "f", false, "Stay attached and print the countdown until it ends")

	timerCmd.AddCommand(timerStartCmd)
	timerCmd.AddCommand(timerPauseCmd)
	timerCmd.AddCommand(timerResetCmd)
	timerCmd.AddCommand(timerStatusCmd)
	timerCmd.AddCommand(timerSetCmd)
}
