package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show comprehensive help for lifeos",
	Long:  `Display detailed help for all lifeos commands, or cobra help for one command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			showCustomHelp()
			return nil
		}
		target, _, err := rootCmd.Find(args)
		if err != nil || target == nil {
			return fmt.Errorf("unknown help topic %q", args)
		}
		return target.Help()
	},
}

func showCustomHelp() {
	fmt.Print(`
██╗     ██╗███████╗███████╗ ██████╗ ███████╗
██║     ██║██╔════╝██╔════╝██╔═══██╗██╔════╝
██║     ██║█████╗  █████╗  ██║   ██║███████╗
██║     ██║██╔══╝  ██╔══╝  ██║   ██║╚════██║
███████╗██║██║     ███████╗╚██████╔╝███████║
╚══════╝╚═╝╚═╝     ╚══════╝ ╚═════╝ ╚══════╝

lifeos - focus timer, tasks, habits, notes, finance and XP

COMMANDS:

  timer                   Interactive focus timer
    space                 Start/pause
    r                     Reset to the full duration
    e                     Edit the duration (only while paused)
    q                     Quit (the countdown keeps running)

  timer start             Start or resume headless
    -f, --follow          Stay attached and print the countdown
  timer pause             Pause and bank the remaining time
  timer reset             Stop and restore the full duration
  timer status            Show the countdown
  timer set <minutes>     Change the session length

  add <task>              Create a new task with smart parsing
    -p, --project         Set project name
    -t, --tags            Comma-separated tags
    --priority            Priority: low|medium|high
    --due                 Due date (today, tomorrow, dd/mm/yyyy, X days|hours|weeks)
    --note                Additional notes

    Smart syntax:
      #hashtags     Auto-create tags
      @project      Set project
      +priority     Set priority (low/medium/high)
      due:3days     Set due date

    Example:
      lifeos add "Fix login bug #frontend @auth +high due:2days"

  ls                      List tasks
    --status              Filter by status: todo|done
    --project             Filter by project name
    --json                JSON output

  done <id>               Mark task as completed (+10 XP)
  undone <id>             Mark task as todo
  rm [kind] <id>          Move an item to the trash
  restore [kind] <id>     Take an item out of the trash
  trash                   List everything in the trash
  purge [kind] <id>       Delete a trashed item for good
    kind                  task (default), note, tx or habit

  habit add <name>        Add a daily habit
  habit ls                Today's habits with streaks
  habit check <id>        Toggle today's check (+5 XP)

  note add <title>        Save a note, #words become tags (+5 XP)
    -c, --content         Note body
    --pin                 Pin to the top
  note ls                 Notes, pinned first
    --tag                 Only notes with this tag

  tx add <amount> [text]  Record an expense, +amount for income (+2 XP)
    #category             Category (default other)
    --income              Record as income
  tx ls                   Recent transactions with income, expense and balance
    -n, --limit           Number of transactions
    --json                JSON output

  stats                   Level and XP progress
  log                     Recent activity
    -n, --limit           Number of events
    --json                JSON output

  version                 Print version information
  help                    Show this help

GLOBAL FLAGS:
  --home                  Data directory (default ~/.lifeos)
  --profile               Profile to use (default "default")

`)
}
