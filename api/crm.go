// ABOUTME: CRM list/update actions: tasks, clients, leads, deals, invoices
// ABOUTME: Plus dashboard, block data and company config
package api

import (
	"context"

	"github.com/1Lab-vibe/a1-client/models"
	"github.com/1Lab-vibe/a1-client/normalize"
)

// FetchTasks loads the task list.
func (c *Client) FetchTasks(ctx context.Context) ([]models.Task, error) {
	raw, err := c.wh.Do(ctx, "getTasks", nil)
	if err != nil {
		return nil, err
	}
	var tasks []models.Task
	decodeRecords(normalize.RecordsJSON(raw, "tasks"), &tasks)
	return tasks, nil
}

// FetchClients loads the client list. Client rows are open maps; the
// normalizer digs the array out of whatever the backend wrapped it in.
func (c *Client) FetchClients(ctx context.Context) ([]models.Client, error) {
	raw, err := c.wh.Do(ctx, "getClients", nil)
	if err != nil {
		return nil, err
	}
	return normalize.RecordsJSON(raw, "clients"), nil
}

// UpdateClient saves a client row and returns the authoritative copy.
func (c *Client) UpdateClient(ctx context.Context, client models.Client) (models.Client, error) {
	raw, err := c.wh.Do(ctx, "updateClient", client)
	if err != nil {
		return nil, err
	}
	if rec := normalize.ObjectJSON(raw, "client"); rec != nil {
		return rec, nil
	}
	return client, nil
}

// FetchLeads loads leads plus the reconciled stage catalog.
func (c *Client) FetchLeads(ctx context.Context) ([]models.Lead, []models.Stage, error) {
	return c.fetchBoard(ctx, "getLeads", "leads")
}

// UpdateLead saves a lead and returns the authoritative copy.
func (c *Client) UpdateLead(ctx context.Context, lead models.Lead) (models.Lead, error) {
	return c.updateBoardRecord(ctx, "updateLead", "lead", lead)
}

// FetchDeals loads deals plus the reconciled stage catalog.
func (c *Client) FetchDeals(ctx context.Context) ([]models.Deal, []models.Stage, error) {
	return c.fetchBoard(ctx, "getDeals", "deals")
}

// UpdateDeal saves a deal and returns the authoritative copy.
func (c *Client) UpdateDeal(ctx context.Context, deal models.Deal) (models.Deal, error) {
	return c.updateBoardRecord(ctx, "updateDeal", "deal", deal)
}

// FetchInvoices loads invoices plus the reconciled stage catalog.
func (c *Client) FetchInvoices(ctx context.Context) ([]models.Invoice, []models.Stage, error) {
	return c.fetchBoard(ctx, "getInvoices", "invoices")
}

// UpdateInvoice saves an invoice and returns the authoritative copy.
func (c *Client) UpdateInvoice(ctx context.Context, invoice models.Invoice) (models.Invoice, error) {
	return c.updateBoardRecord(ctx, "updateInvoice", "invoice", invoice)
}

func (c *Client) fetchBoard(ctx context.Context, action, key string) ([]models.Record, []models.Stage, error) {
	raw, err := c.wh.Do(ctx, action, nil)
	if err != nil {
		return nil, nil, err
	}
	tree := normalize.FromJSON(raw)
	records := normalize.Records(tree, key)
	stages := normalize.Stages(tree)
	return records, stages, nil
}

func (c *Client) updateBoardRecord(ctx context.Context, action, key string, rec models.Record) (models.Record, error) {
	raw, err := c.wh.Do(ctx, action, rec)
	if err != nil {
		return nil, err
	}
	if out := normalize.ObjectJSON(raw, key); out != nil {
		return out, nil
	}
	return rec, nil
}

// LeadEvents extracts a lead's embedded event history, most recent first.
func LeadEvents(lead models.Lead) []models.Record {
	return normalize.Events(map[string]any(lead))
}

// FetchDashboard loads dashboard data for a template (default, sales, ...).
func (c *Client) FetchDashboard(ctx context.Context, template string) (models.Record, error) {
	raw, err := c.wh.Do(ctx, "getDashboard", map[string]string{"template": template})
	if err != nil {
		return nil, err
	}
	return normalize.ObjectJSON(raw), nil
}

// FetchBlockData loads placeholder data for a not-yet-built view.
func (c *Client) FetchBlockData(ctx context.Context, viewID string) (models.Record, error) {
	raw, err := c.wh.Do(ctx, "getBlockData", map[string]string{"view": viewID})
	if err != nil {
		return nil, err
	}
	return normalize.ObjectJSON(raw), nil
}

// FetchConfig loads the company config tree.
func (c *Client) FetchConfig(ctx context.Context) (models.Record, error) {
	raw, err := c.wh.Do(ctx, "getConfig", nil)
	if err != nil {
		return nil, err
	}
	return normalize.ObjectJSON(raw, "config"), nil
}

// UpdateConfig saves the company config tree.
func (c *Client) UpdateConfig(ctx context.Context, cfg models.Record) (models.Record, error) {
	raw, err := c.wh.Do(ctx, "updateConfig", cfg)
	if err != nil {
		return nil, err
	}
	if out := normalize.ObjectJSON(raw, "config"); out != nil {
		return out, nil
	}
	return cfg, nil
}
