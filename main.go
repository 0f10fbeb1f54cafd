// ABOUTME: Entry point for the A1 CRM webhook client
// ABOUTME: Routes to CLI commands and the assistant console based on arguments
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/1Lab-vibe/a1-client/cli"
	"github.com/1Lab-vibe/a1-client/config"
)

const version = "0.1.0"

func main() {
	// .env is optional; real env vars and the runtime config file still apply.
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show version and exit")
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("a1 version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := cli.NewApp(cfg, logger)

	commands := map[string]func(*cli.App, []string) error{
		"login":     cli.LoginCommand,
		"logout":    cli.LogoutCommand,
		"demo":      cli.DemoCommand,
		"tasks":     cli.TasksCommand,
		"clients":   cli.ClientsCommand,
		"leads":     cli.LeadsCommand,
		"deals":     cli.DealsCommand,
		"invoices":  cli.InvoicesCommand,
		"chat":      cli.ChatCommand,
		"dashboard": cli.DashboardCommand,
		"block":     cli.BlockCommand,
		"config":    cli.ConfigCommand,
		"console":   cli.ConsoleCommand,
	}

	command := args[0]
	run, ok := commands[command]
	if !ok {
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err := run(app, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if v := os.Getenv("A1_LOG_LEVEL"); v != "" {
		if parsed, err := zerolog.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func printUsage() {
	fmt.Println("a1 - CRM webhook client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  a1 <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login       Authenticate and store the session")
	fmt.Println("  logout      Clear the stored session")
	fmt.Println("  demo        Request demo access")
	fmt.Println("  console     Interactive assistant console")
	fmt.Println("  tasks       List automation tasks")
	fmt.Println("  clients     List or update clients")
	fmt.Println("  leads       Leads board (list, move, events)")
	fmt.Println("  deals       Deals board")
	fmt.Println("  invoices    Invoices board")
	fmt.Println("  chat        Team chat")
	fmt.Println("  dashboard   Dashboard data")
	fmt.Println("  block       Block data for a view")
	fmt.Println("  config      Show or edit company config")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  A1_WEBHOOK_URL     Webhook endpoint")
	fmt.Println("  A1_WEBHOOK_SECRET  HMAC secret (enables request signing)")
	fmt.Println("  A1_LOG_LEVEL      Log level (default warn)")
}
