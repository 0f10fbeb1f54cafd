// ABOUTME: CRM record CLI commands: tasks, clients, leads, deals, invoices
// ABOUTME: Kanban boards print grouped by reconciled stage; tables use tabwriter
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/1Lab-vibe/a1-client/api"
	"github.com/1Lab-vibe/a1-client/models"
	"github.com/1Lab-vibe/a1-client/normalize"
)

// Default stage catalogs per board. The backend's stages win; these fill
// the gaps so the board always has columns.
var (
	defaultLeadStages = []models.Stage{
		{ID: "new", Title: "New", Order: 0},
		{ID: "contacted", Title: "Contacted", Order: 1},
		{ID: "qualified", Title: "Qualified", Order: 2},
		{ID: "lost", Title: "Lost", Order: 3},
	}
	defaultDealStages = []models.Stage{
		{ID: "new", Title: "New", Order: 0},
		{ID: "negotiation", Title: "Negotiation", Order: 1},
		{ID: "won", Title: "Won", Order: 2},
		{ID: "lost", Title: "Lost", Order: 3},
	}
	defaultInvoiceStages = []models.Stage{
		{ID: "draft", Title: "Draft", Order: 0},
		{ID: "sent", Title: "Sent", Order: 1},
		{ID: "paid", Title: "Paid", Order: 2},
		{ID: "overdue", Title: "Overdue", Order: 3},
	}
)

// TasksCommand lists automation tasks.
func TasksCommand(app *App, args []string) error {
	tasks, err := app.API.FetchTasks(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tDOMAIN\tSTATUS\tSTEP\tCREATED")
	for _, task := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\t%s\n",
			task.ID, task.TaskType, task.Domain, task.Status, task.StepIndex,
			formatCell(task.CreatedAt, "created_at"))
	}
	return w.Flush()
}

// ClientsCommand lists clients, or updates one with `--set key=value`.
func ClientsCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("clients", flag.ExitOnError)
	id := fs.String("id", "", "Client id to update")
	var sets multiFlag
	fs.Var(&sets, "set", "key=value to set (repeatable, requires --id)")
	_ = fs.Parse(args)

	ctx := context.Background()
	clients, err := app.API.FetchClients(ctx)
	if err != nil {
		return fmt.Errorf("failed to load clients: %w", err)
	}

	if *id != "" {
		return updateClient(ctx, app, clients, *id, sets)
	}

	if len(clients) == 0 {
		fmt.Println("No clients")
		return nil
	}
	printRecordTable(clients)
	return nil
}

func updateClient(ctx context.Context, app *App, clients []models.Client, id string, sets []string) error {
	var target models.Client
	for _, c := range clients {
		if c.ID() == id {
			target = c
			break
		}
	}
	if target == nil {
		return fmt.Errorf("client %s not found", id)
	}
	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q, want key=value", kv)
		}
		// Values that parse as JSON keep their type; everything else is a string.
		var parsed any
		if err := json.Unmarshal([]byte(value), &parsed); err == nil {
			target[key] = parsed
		} else {
			target[key] = value
		}
	}
	saved, err := app.API.UpdateClient(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	fmt.Printf("✓ Client updated: %s\n", saved.ID())
	return nil
}

// LeadsCommand shows the leads board, or moves a lead between stages.
func LeadsCommand(app *App, args []string) error {
	return boardCommand(app, args, "leads",
		app.API.FetchLeads, app.API.UpdateLead, defaultLeadStages)
}

// DealsCommand shows the deals board, or moves a deal between stages.
func DealsCommand(app *App, args []string) error {
	return boardCommand(app, args, "deals",
		app.API.FetchDeals, app.API.UpdateDeal, defaultDealStages)
}

// InvoicesCommand shows the invoices board, or moves an invoice.
func InvoicesCommand(app *App, args []string) error {
	return boardCommand(app, args, "invoices",
		app.API.FetchInvoices, app.API.UpdateInvoice, defaultInvoiceStages)
}

func boardCommand(
	app *App,
	args []string,
	name string,
	fetch func(context.Context) ([]models.Record, []models.Stage, error),
	update func(context.Context, models.Record) (models.Record, error),
	defaults []models.Stage,
) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	move := fs.String("move", "", "Record id to move")
	stage := fs.String("stage", "", "Target stage id (with --move)")
	list := fs.Bool("list", false, "Flat table instead of the board")
	events := fs.String("events", "", "Show the event history of a record id")
	_ = fs.Parse(args)

	ctx := context.Background()
	records, backendStages, err := fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", name, err)
	}
	stages := normalize.ReconcileStages(records, backendStages, defaults)

	if *events != "" {
		return printEvents(records, *events)
	}

	if *move != "" {
		if *stage == "" {
			return fmt.Errorf("--stage is required with --move")
		}
		return moveRecord(ctx, records, stages, update, *move, *stage)
	}

	if *list {
		printRecordTable(records)
		return nil
	}
	printBoard(records, stages)
	return nil
}

func moveRecord(
	ctx context.Context,
	records []models.Record,
	stages []models.Stage,
	update func(context.Context, models.Record) (models.Record, error),
	id, stageID string,
) error {
	known := false
	for _, s := range stages {
		if s.ID == stageID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown stage %q", stageID)
	}
	for _, rec := range records {
		if rec.ID() != id {
			continue
		}
		if rec.StageID() == stageID {
			fmt.Println("Already there")
			return nil
		}
		saved, err := update(ctx, rec.WithStage(stageID))
		if err != nil {
			return fmt.Errorf("failed to move %s: %w", id, err)
		}
		fmt.Printf("✓ %s → %s\n", saved.ID(), stageID)
		return nil
	}
	return fmt.Errorf("record %s not found", id)
}

func printBoard(records []models.Record, stages []models.Stage) {
	for _, stage := range stages {
		var items []models.Record
		for _, rec := range records {
			if rec.StageID() == stage.ID {
				items = append(items, rec)
			}
		}
		fmt.Printf("%s (%d)\n", stage.Title, len(items))
		for _, rec := range items {
			fmt.Printf("  %s  %s\n", rec.ID(), rec.Title())
		}
	}
}

func printRecordTable(records []models.Record) {
	columns := recordColumns(records)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(columns, "\t")))
	for _, rec := range records {
		cells := make([]string, len(columns))
		for i, key := range columns {
			cells[i] = formatCell(rec[key], key)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	_ = w.Flush()
}

func printEvents(records []models.Record, id string) error {
	for _, rec := range records {
		if rec.ID() != id {
			continue
		}
		events := api.LeadEvents(rec)
		if len(events) == 0 {
			fmt.Println("No events")
			return nil
		}
		for _, ev := range events {
			ts := normalize.EventTimestamp(ev)
			fmt.Printf("%s  %s  %s\n",
				formatMessageTime(ts), formatCell(ev["type"], "type"), formatCell(ev["message"], "message"))
		}
		return nil
	}
	return fmt.Errorf("record %s not found", id)
}

// multiFlag collects repeated flag values.
type multiFlag []string

func (m *multiFlag) String() string     { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error { *m = append(*m, v); return nil }
