package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "daybook-cli",
		Short: "Daybook CLI tool",
		Long:  `A command line interface for interacting with the Daybook API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Daybook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	accountsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			listAccounts()
		},
	}

	accountsSummaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show assets, liabilities and net worth",
		Run: func(cmd *cobra.Command, args []string) {
			showAccountSummary()
		},
	}

	accountsCmd.AddCommand(accountsListCmd, accountsSummaryCmd)
	rootCmd.AddCommand(accountsCmd)

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income and expense totals for the current month",
		Run: func(cmd *cobra.Command, args []string) {
			showFinanceSummary()
		},
	}
	rootCmd.AddCommand(summaryCmd)

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Run: func(cmd *cobra.Command, args []string) {
			checkHealth()
		},
	}
	rootCmd.AddCommand(healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getJSON(path string) map[string]any {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	return result
}

func listAccounts() {
	result := getJSON("/api/v1/accounts")

	accounts, _ := result["accounts"].([]any)
	for _, a := range accounts {
		account, ok := a.(map[string]any)
		if !ok {
			continue
		}
		marker := " "
		if isDefault, _ := account["is_default"].(bool); isDefault {
			marker = "*"
		}
		fmt.Printf("%s %s  %-20s %-10s balance=%v available=%v\n",
			marker, account["id"], account["name"], account["kind"],
			account["balance"], account["available_balance"])
	}
	fmt.Printf("Total: %v\n", result["total"])
}

func showAccountSummary() {
	result := getJSON("/api/v1/accounts/summary")

	fmt.Printf("Assets:      %v\n", result["total_assets"])
	fmt.Printf("Liabilities: %v\n", result["total_liabilities"])
	fmt.Printf("Net worth:   %v\n", result["net_worth"])
}

func showFinanceSummary() {
	result := getJSON("/api/v1/accounting/transactions/summary")

	fmt.Printf("Period:  %s\n", result["period"])
	fmt.Printf("Income:  %v\n", result["total_income"])
	fmt.Printf("Expense: %v\n", result["total_expense"])
	fmt.Printf("Balance: %v\n", result["balance"])
}

func checkHealth() {
	result := getJSON("/ready")

	fmt.Printf("Status: %s\n", result["status"])
	if pg, ok := result["postgres"]; ok {
		fmt.Printf("Postgres: %s\n", pg)
	}
	if rd, ok := result["redis"]; ok {
		fmt.Printf("Redis: %s\n", rd)
	}
}
