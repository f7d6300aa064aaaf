package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"mogul/internal/game"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func renderInit(result game.InitResult) {
	accent.Printf("\n== %s ==\n", result.Session.CompanyName)
	fmt.Printf("Game ID:  %s\n", result.Session.ID)
	fmt.Printf("Budget:   $%d\n", result.Session.Budget)
	fmt.Printf("Quarter:  %d, Week %d\n", result.Session.CurrentQuarter, result.Session.CurrentWeek)

	fmt.Println()
	accent.Println("Available Contracts")
	renderContracts(result.Contracts)

	fmt.Println()
	accent.Println("Hiring Pool")
	renderEmployees(result.EmployeePool)
}

func renderState(state game.State) {
	s := state.Session
	accent.Printf("\n== %s (Q%d W%d) ==\n", s.CompanyName, s.CurrentQuarter, s.CurrentWeek)
	fmt.Printf("Status:             %s\n", s.Status)
	fmt.Printf("Budget:             $%d\n", s.Budget)
	fmt.Printf("Stakeholder Value:  %d\n", s.StakeholderValue)
	fmt.Printf("Score:              %d (threshold %d)\n", game.TotalScore(s), game.MinimumThreshold(s.CurrentQuarter))

	fmt.Println()
	accent.Println("Team")
	if len(state.ActiveEmployees) == 0 {
		printInfo("No employees on payroll.")
	} else {
		renderEmployees(state.ActiveEmployees)
	}

	fmt.Println()
	accent.Println("Active Contracts")
	if len(state.ActiveContracts) == 0 {
		printInfo("No contracts in progress.")
	} else {
		renderContracts(state.ActiveContracts)
	}

	fmt.Println()
	accent.Println("Available Contracts")
	if len(state.AvailableContracts) == 0 {
		printInfo("Nothing on the market this quarter.")
	} else {
		renderContracts(state.AvailableContracts)
	}

	fmt.Println()
	accent.Println("Hiring Pool")
	if len(state.EmployeePool) == 0 {
		printInfo("Pool is empty.")
	} else {
		renderEmployees(state.EmployeePool)
	}
}

func renderTurn(result game.TurnResult) {
	s := result.Session
	accent.Printf("\n== Week resolved: now Q%d W%d ==\n", s.CurrentQuarter, s.CurrentWeek)
	fmt.Printf("Budget: $%d  Stakeholder: %d  Score: %d\n", s.Budget, s.StakeholderValue, game.TotalScore(s))

	for _, cr := range result.ContractResults {
		c := cr.Contract
		line := fmt.Sprintf("%-28s %3.0f%% (+%d work, %d workers, %d weeks left) [%s]",
			truncate(c.Title, 28), c.CompletionPercentage(), cr.WorkApplied, cr.Workers, c.WeeksRemaining, c.Status)
		switch c.Status {
		case game.ContractCompleted:
			success.Println(line)
		case game.ContractFailed:
			danger.Println(line)
		default:
			fmt.Println(line)
		}
	}
	for _, c := range result.CompletedContracts {
		printSuccess(fmt.Sprintf("Completed %q for $%d", c.Title, c.FinalReward))
	}
	for _, emp := range result.QuitEmployees {
		printWarn(fmt.Sprintf("%s quit (morale %d)", emp.Name, emp.Morale))
	}
	if len(result.NewContracts) > 0 {
		fmt.Println()
		accent.Println("New Quarter Contracts")
		renderContracts(result.NewContracts)
	}
	if s.Status == game.SessionFailed {
		printError("Quarterly review failed. The board has shut the company down.")
	}
}

func renderContracts(contracts []game.Contract) {
	fmt.Printf("%-36s %-28s %-8s %6s %6s %8s %6s\n", "ID", "TITLE", "DIFF", "WORK", "WEEKS", "REWARD", "PTS")
	for _, c := range contracts {
		fmt.Printf("%-36s %-28s %-8s %6d %6d %8d %6d\n",
			c.ID, truncate(c.Title, 28), c.Difficulty, c.TotalWorkRequired, c.WeeksRemaining, c.BaseReward, c.StakeholderPoints)
	}
}

func renderEmployees(employees []game.Employee) {
	fmt.Printf("%-36s %-20s %5s %5s %4s %7s %7s\n", "ID", "NAME", "LVL", "SPD", "ACC", "MORALE", "SALARY")
	for _, e := range employees {
		fmt.Printf("%-36s %-20s %5d %5d %4d %7d %7d\n",
			e.ID, truncate(e.Name, 20), e.Level, e.Speed, e.Accuracy, e.Morale, e.Salary)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
