package main

import (
	"bytes"
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
		Use:   "moussir-cli",
		Short: "Moussir ledger CLI tool",
		Long:  `A command line interface for interacting with the Moussir ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	var (
		payAmount string
		payMethod string
		payDate   string
		payNote   string
	)

	payCmd := &cobra.Command{
		Use:   "pay <account-id>",
		Short: "Record a payment against an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			submitPayment(args[0], payAmount, payMethod, payDate, payNote)
		},
	}
	payCmd.Flags().StringVar(&payAmount, "amount", "", "Payment amount")
	payCmd.Flags().StringVar(&payMethod, "method", "cash", "Payment method (cash, card, cheque, transfer)")
	payCmd.Flags().StringVar(&payDate, "date", "", "Payment date (YYYY-MM-DD, defaults to today)")
	payCmd.Flags().StringVar(&payNote, "note", "", "Optional note")
	rootCmd.AddCommand(payCmd)

	balanceCmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show an account's balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showBalance(args[0])
		},
	}
	rootCmd.AddCommand(balanceCmd)

	var (
		receiptAmount string
		receiptDate   string
		receiptTxID   string
	)

	receiptCmd := &cobra.Command{
		Use:   "receipt <account-id>",
		Short: "Rebuild a receipt for a past payment",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			buildReceipt(args[0], receiptAmount, receiptDate, receiptTxID)
		},
	}
	receiptCmd.Flags().StringVar(&receiptAmount, "amount", "", "Payment amount")
	receiptCmd.Flags().StringVar(&receiptDate, "date", "", "Payment date (YYYY-MM-DD)")
	receiptCmd.Flags().StringVar(&receiptTxID, "transaction-id", "", "Transaction id for an exact match")
	rootCmd.AddCommand(receiptCmd)

	driftCmd := &cobra.Command{
		Use:   "drift <account-id>",
		Short: "Compare the account balance against the ledger",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			checkDrift(args[0])
		},
	}
	rootCmd.AddCommand(driftCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func parseDate(value string) string {
	if value == "" {
		return time.Now().UTC().Format(time.RFC3339)
	}

	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		fmt.Printf("Invalid date %q, expected YYYY-MM-DD\n", value)
		os.Exit(1)
	}

	return day.Format(time.RFC3339)
}

func submitPayment(accountID, amount, method, date, note string) {
	payload := map[string]any{
		"amount": amount,
		"method": method,
		"date":   parseDate(date),
		"note":   note,
	}

	result := postJSON("/api/v1/accounts/"+accountID+"/payments", payload)

	fmt.Printf("Payment recorded\n")
	fmt.Printf("Transaction: %s\n", result["transaction_id"])
	fmt.Printf("Account:     %s (%s)\n", result["account_name"], result["account_code"])
	fmt.Printf("Paid:        %s\n", result["paid_amount"])
	fmt.Printf("Balance:     %s -> %s (%s)\n", result["previous_balance"], result["new_balance"], result["new_balance_sign"])
}

func showBalance(accountID string) {
	result := getJSON("/api/v1/accounts/" + accountID)

	fmt.Printf("Account: %s (%s)\n", result["display_name"], result["code"])
	fmt.Printf("Balance: %s (%s)\n", result["balance_magnitude"], result["balance_sign"])
}

func buildReceipt(accountID, amount, date, txID string) {
	payload := map[string]any{
		"amount": amount,
		"date":   parseDate(date),
	}
	if txID != "" {
		payload["transaction_id"] = txID
	}

	result := postJSON("/api/v1/accounts/"+accountID+"/receipts", payload)

	fmt.Printf("Receipt for %s (%s)\n", result["account_name"], result["account_code"])
	fmt.Printf("Date:    %s\n", result["formatted_date"])
	fmt.Printf("Paid:    %s\n", result["paid_amount"])
	fmt.Printf("Balance: %s -> %s (%s)\n", result["previous_balance"], result["new_balance"], result["new_balance_sign"])
	if seq, ok := result["sequence_number"].(string); ok && seq != "" {
		fmt.Printf("Number:  %s\n", seq)
	}
}

func checkDrift(accountID string) {
	result := getJSON("/api/v1/accounts/" + accountID + "/balance/drift")

	if converged, ok := result["converged"].(bool); ok && converged {
		fmt.Printf("Balance CONVERGED with ledger\n")
		return
	}

	fmt.Printf("Balance DIVERGED from ledger\n")
	fmt.Printf("Drift: %s\n", result["drift"])
	os.Exit(1)
}

func getJSON(path string) map[string]any {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}

func postJSON(path string, payload map[string]any) map[string]any {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}

func decodeResponse(resp *http.Response) map[string]any {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	return result
}
