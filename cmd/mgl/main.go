package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	cl "mogul/internal/cli"
	"mogul/internal/config"
	"mogul/internal/syncq"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLI()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "mgl",
		Short:        "Mogul CLI game client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newNewCmd(&apiBase),
		newStatusCmd(&apiBase),
		newTurnCmd(&apiBase),
		newHireCmd(&apiBase),
		newFireCmd(&apiBase),
		newStartCmd(&apiBase),
		newAssignCmd(&apiBase),
		newEndCmd(&apiBase),
		newResumeCmd(&apiBase),
		newSyncCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func newNewCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "new [company name]",
		Short: "Start a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				var err error
				name, err = promptRequired("Company name")
				if err != nil {
					return err
				}
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			result, err := client.NewGame(ctx, name)
			if err != nil {
				return err
			}
			if err := cl.SaveCurrentGame(cl.CurrentGame{
				GameID:      result.Session.ID,
				CompanyName: result.Session.CompanyName,
			}); err != nil {
				return err
			}
			renderInit(result)
			return nil
		},
	}
}

func newStatusCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current game state",
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := cl.LoadCurrentGame()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			state, err := client.State(ctx, current.GameID)
			if err != nil {
				return err
			}
			renderState(state)
			return nil
		},
	}
}

func newTurnCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "turn",
		Short: "Advance the game by one week",
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := cl.LoadCurrentGame()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			result, err := client.ProcessTurn(ctx, current.GameID)
			if err != nil {
				return queueOnNetworkError(err, syncq.Command{
					Method: http.MethodPost,
					Path:   "/v1/games/" + current.GameID + "/turn",
				})
			}
			renderTurn(result)
			return nil
		},
	}
}

func newHireCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "hire <employee-id>",
		Short: "Hire an employee from the pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := cl.LoadCurrentGame()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.Hire(ctx, current.GameID, strings.TrimSpace(args[0]))
			if err != nil {
				return queueOnNetworkError(err, syncq.Command{
					Method: http.MethodPost,
					Path:   "/v1/games/" + current.GameID + "/employees/hire",
					Body:   map[string]any{"employee_id": strings.TrimSpace(args[0])},
				})
			}
			printSuccess(fmt.Sprintf("Hired %s (budget now $%d)", out.Employee.Name, out.Session.Budget))
			return nil
		},
	}
}

func newFireCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fire <employee-id>",
		Short: "Fire an active employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := cl.LoadCurrentGame()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			if _, err := client.Fire(ctx, current.GameID, strings.TrimSpace(args[0])); err != nil {
				return err
			}
			printSuccess("Employee fired.")
			return nil
		},
	}
}

func newStartCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start <contract-id>",
		Short: "Start an available contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := cl.LoadCurrentGame()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			if _, err := client.StartContract(ctx, current.GameID, strings.TrimSpace(args[0])); err != nil {
				return err
			}
			printSuccess("Contract started.")
			return nil
		},
	}
}

func newAssignCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <contract-id> <employee-id>",
		Short: "Assign an employee to a contract for this week",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := cl.LoadCurrentGame()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			contractID := strings.TrimSpace(args[0])
			employeeID := strings.TrimSpace(args[1])
			if _, err := client.Assign(ctx, current.GameID, contractID, employeeID); err != nil {
				return queueOnNetworkError(err, syncq.Command{
					Method: http.MethodPost,
					Path:   "/v1/games/" + current.GameID + "/contracts/" + contractID + "/assign",
					Body:   map[string]any{"employee_id": employeeID},
				})
			}
			printSuccess("Employee assigned for this week.")
			return nil
		},
	}
}

func newEndCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := cl.LoadCurrentGame()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.EndGame(ctx, current.GameID)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Game over. Final score: %d", out.Score))
			return cl.ClearCurrentGame()
		},
	}
}

func newResumeCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused game",
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := cl.LoadCurrentGame()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			if _, err := client.Resume(ctx, current.GameID); err != nil {
				return err
			}
			printSuccess("Game resumed.")
			return nil
		},
	}
}

func newSyncCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay locally queued offline writes",
		RunE: func(cmd *cobra.Command, args []string) error {
			queue, err := syncq.Load()
			if err != nil {
				return err
			}
			if len(queue) == 0 {
				printInfo("Sync queue is empty.")
				return nil
			}
			client := newClient(apiBase)
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			remaining := make([]syncq.Command, 0, len(queue))
			success := 0
			for _, q := range queue {
				if _, err := client.Do(ctx, q.Method, q.Path, q.Body); err != nil {
					remaining = append(remaining, q)
					printError(fmt.Sprintf("Sync failed for %s %s: %v", q.Method, q.Path, err))
					continue
				}
				success++
			}
			if err := syncq.Save(remaining); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Sync complete: replayed=%d remaining=%d", success, len(remaining)))
			return nil
		},
	}
}

// queueOnNetworkError stashes the command locally when the API was
// unreachable. Structured API errors are real rejections and are not
// queued.
func queueOnNetworkError(err error, cmd syncq.Command) error {
	if err == nil {
		return nil
	}
	if isAPIStructuredError(err) {
		return err
	}
	if pushErr := syncq.Push(cmd); pushErr != nil {
		return fmt.Errorf("request failed and could not queue: %w", err)
	}
	printWarn("API unreachable, command queued. Run `mgl sync` when back online.")
	return nil
}

func isAPIStructuredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "api status")
}
