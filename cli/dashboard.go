// ABOUTME: Dashboard and block-data CLI commands
package cli

import (
	"context"
	"flag"
	"fmt"
	"sort"
)

// DashboardCommand loads dashboard data for a template.
func DashboardCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	template := fs.String("template", "default", "Dashboard template (default, sales, ops, custom)")
	_ = fs.Parse(args)

	data, err := app.API.FetchDashboard(context.Background(), *template)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}
	if len(data) == 0 {
		fmt.Printf("No data (template %s)\n", *template)
		return nil
	}
	printFlatRecord(data)
	return nil
}

// BlockCommand loads placeholder data for a view section.
func BlockCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("block", flag.ExitOnError)
	view := fs.String("view", "", "View id, e.g. crm/dashboard (required)")
	_ = fs.Parse(args)

	if *view == "" {
		return fmt.Errorf("--view is required")
	}
	data, err := app.API.FetchBlockData(context.Background(), *view)
	if err != nil {
		return fmt.Errorf("failed to load block data: %w", err)
	}
	if len(data) == 0 {
		fmt.Printf("No data (view %s)\n", *view)
		return nil
	}
	printFlatRecord(data)
	return nil
}

func printFlatRecord(data map[string]any) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s: %s\n", k, formatCell(data[k], k))
	}
}
