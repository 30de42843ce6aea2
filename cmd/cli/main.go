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
		Use:   "gobooks-cli",
		Short: "GoBooks CLI tool",
		Long:  `A command line interface for interacting with the GoBooks bookkeeping API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoBooks API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(ledgerCmd(), accountsCmd(), commitCmd(), reportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List ledgers",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/ledgers")
		},
	})

	create := &cobra.Command{
		Use:   "create <xid>",
		Short: "Create a ledger",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			post("/api/v1/ledgers", map[string]string{"xid": args[0], "name": name})
		},
	}
	create.Flags().String("name", "", "Ledger display name (defaults to the xid)")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "lock <id>",
		Short: "Lock a ledger against new commits",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/ledgers/"+args[0]+"/lock", nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unlock <id>",
		Short: "Unlock a ledger",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/ledgers/"+args[0]+"/unlock", nil)
		},
	})

	return cmd
}

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "Show the chart of accounts",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/accounts")
		},
	}
}

func commitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit <ledger-xid> <blueprint> <amount>",
		Short: "Dispatch a blueprint entry and commit it",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			markPosted, _ := cmd.Flags().GetBool("post")
			description, _ := cmd.Flags().GetString("description")

			blueprintArgs := map[string]string{"amount": args[2]}
			if description != "" {
				blueprintArgs["description"] = description
			}
			post("/api/v1/commit", map[string]any{
				"post": markPosted,
				"entries": []map[string]any{
					{"ledger_xid": args[0], "blueprint": args[1], "args": blueprintArgs},
				},
			})
		},
	}
	cmd.Flags().Bool("post", true, "Mark the entry as posted")
	cmd.Flags().String("description", "", "Entry description")
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial statements",
	}

	var from, to, asOf, unit string
	period := func(kind string) *cobra.Command {
		c := &cobra.Command{
			Use:   kind,
			Short: "Build the " + kind + " report",
			Run: func(cmd *cobra.Command, args []string) {
				get("/api/v1/reports/" + kind + periodQuery(from, to, unit))
			},
		}
		c.Flags().StringVar(&from, "from", "", "Period start (RFC3339 or YYYY-MM-DD)")
		c.Flags().StringVar(&to, "to", "", "Period end, defaults to now")
		c.Flags().StringVar(&unit, "unit", "", "Entity unit scope")
		return c
	}

	bs := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Build the balance sheet",
		Run: func(cmd *cobra.Command, args []string) {
			query := ""
			if asOf != "" {
				query = "?as_of=" + asOf
				if unit != "" {
					query += "&unit=" + unit
				}
			} else if unit != "" {
				query = "?unit=" + unit
			}
			get("/api/v1/reports/balance-sheet" + query)
		},
	}
	bs.Flags().StringVar(&asOf, "as-of", "", "Snapshot instant, defaults to now")
	bs.Flags().StringVar(&unit, "unit", "", "Entity unit scope")

	cmd.AddCommand(bs, period("income-statement"), period("cash-flow"),
		period("ratios"), period("financial-statements"))
	return cmd
}

// periodQuery builds the ?from=&to=&unit= query string, omitting empties.
func periodQuery(from, to, unit string) string {
	query := ""
	sep := "?"
	for _, kv := range [][2]string{{"from", from}, {"to", to}, {"unit", unit}} {
		if kv[1] == "" {
			continue
		}
		query += sep + kv[0] + "=" + kv[1]
		sep = "&"
	}
	return query
}

func get(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	render(resp)
}

func post(path string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error encoding request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	render(resp)
}

func render(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return
	}
	printJSON(pretty)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
