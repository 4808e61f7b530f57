package seed

import (
	"epitrack/internal/utils"
	"epitrack/pkg/types"
	"context"
	"fmt"
)

type ItemUpserter interface {
	UpsertEquipmentItem(ctx context.Context, item *types.EquipmentItem) error
}

type CheckUpserter interface {
	UpsertCheck(ctx context.Context, check *types.EquipmentCheck) error
}

type demoItem struct {
	ID       string
	TypeID   string
	Serial   string
	Assignee string
	Status   string
}

type demoCheck struct {
	ID       string
	ItemID   string
	Assignee string
	Offset   int
	Result   string
	Type     string
	Priority types.Priority
}

// Demo items reference the catalogue and the roster by their fixed ids.
var demoItems = []demoItem{
	{ID: "BpcwEDTVsUzUeBYYI54dGiANXICbt2fI", TypeID: "kJxyXeyrVTjzpTMKuqk8TyWMEBmq8jfn", Serial: "CSQ-2023-001", Assignee: "DuduiIDZEx3SagniMra7BmMwsMz1f2rs", Status: "Bon état"},
	{ID: "PpbQdmTLGNOXQ78hgvw7PQHqGKLl9T5K", TypeID: "JJ18uzJEZoTAaOWkYFbjx6I3BkJ5POmr", Serial: "TF-2023-085", Assignee: "gmzGq7oAO4ikrSUn7jAXjsyjAaxaPOyA", Status: "À vérifier"},
	{ID: "xqjIotruHnug7V8G1Mu5CDW0TpwHBf4C", TypeID: "MrRW0IS70OZy1eK9EnF68d8ucs0nuROj", Serial: "ARI-2022-023", Assignee: "nUaZL9ryIpRnNSEVEIvoToUBduwBpkpf", Status: "Maintenance"},
	{ID: "Z6C4SHwk9xTwiVc4i9ZaA7e8B5FQMeMf", TypeID: "ouTIYVzQPQmR23guXxPThUuRfzeZPSnm", Serial: "GT-2024-014", Assignee: "qdouklJzqBtvIz28MkImOgFIJQwtO2XW", Status: "Disponible"},
	{ID: "Qu0egFMsPY2eAMawDcI9rYR9gHwGYm6I", TypeID: "I0D4nkGW66sQjxtZUonoP6wCmrs3y80x", Serial: "BT-2023-042", Assignee: "cvrEDZhCuypH6xQXArb47NNBN8ROL8zd", Status: "Mauvais"},
}

// Offsets are days from the seeding day, so a fresh seed always shows an
// overdue check, one due today and a few upcoming.
var demoChecks = []demoCheck{
	{ID: "sAludbPpChhRq1xLma2teiScrZ0HFdpo", ItemID: "xqjIotruHnug7V8G1Mu5CDW0TpwHBf4C", Assignee: "nUaZL9ryIpRnNSEVEIvoToUBduwBpkpf", Offset: -5, Result: types.CheckResultPlanned, Type: "Maintenance préventive", Priority: types.PriorityHigh},
	{ID: "GmWVgxpHjzLTjm32vMjmXIKjMKkKh08i", ItemID: "PpbQdmTLGNOXQ78hgvw7PQHqGKLl9T5K", Assignee: "gmzGq7oAO4ikrSUn7jAXjsyjAaxaPOyA", Offset: 0, Result: types.CheckResultPlanned, Type: types.DefaultVerificationType, Priority: types.PriorityNormal},
	{ID: "MkJykhezIYX6TErYTLjJ2pGKL9TPnNed", ItemID: "BpcwEDTVsUzUeBYYI54dGiANXICbt2fI", Assignee: "DuduiIDZEx3SagniMra7BmMwsMz1f2rs", Offset: 3, Result: types.CheckResultPlanned, Type: "Contrôle de conformité", Priority: types.PriorityUrgent},
	{ID: "53ijNsL03gOkESzrG80jOsUtJC4q3CLw", ItemID: "Z6C4SHwk9xTwiVc4i9ZaA7e8B5FQMeMf", Assignee: "qdouklJzqBtvIz28MkImOgFIJQwtO2XW", Offset: 1, Result: types.CheckResultPending, Type: "Test de fonctionnement", Priority: types.PriorityLow},
	{ID: "QXYFfGocQ0ErnbwmPtuOHHVwJjPtlNMu", ItemID: "Qu0egFMsPY2eAMawDcI9rYR9gHwGYm6I", Assignee: "cvrEDZhCuypH6xQXArb47NNBN8ROL8zd", Offset: 10, Result: types.CheckResultPlanned, Type: "Inspection après utilisation", Priority: types.PriorityNormal},
	{ID: "KuKQUhlKMwAZB8EwOsXLZgccd1wIVjJD", ItemID: "BpcwEDTVsUzUeBYYI54dGiANXICbt2fI", Assignee: "DuduiIDZEx3SagniMra7BmMwsMz1f2rs", Offset: -12, Result: types.CheckResultDone, Type: types.DefaultVerificationType, Priority: types.PriorityNormal},
}

// SeedDemo upserts sample equipment and checks around today. It expects the
// catalogue and the roster to be seeded first.
func SeedDemo(ctx context.Context, items ItemUpserter, checks CheckUpserter, today types.Date) error {
	next := make(map[string]types.Date)
	last := make(map[string]types.Date)
	for _, c := range demoChecks {
		d := today.AddDays(c.Offset)
		if types.ParseCheckStatus(c.Result).Done() {
			if d.After(last[c.ItemID]) {
				last[c.ItemID] = d
			}
			continue
		}
		if n, ok := next[c.ItemID]; !ok || d.Before(n) {
			next[c.ItemID] = d
		}
	}

	for _, d := range demoItems {
		item := &types.EquipmentItem{
			ID:            d.ID,
			TypeID:        utils.StringPtr(d.TypeID),
			SerialNumber:  d.Serial,
			AssignedTo:    utils.StringPtr(d.Assignee),
			Status:        utils.StringPtr(d.Status),
			PurchaseDate:  today.AddDays(-400).Ptr(),
			LastCheckDate: last[d.ID].Ptr(),
			NextCheckDate: next[d.ID].Ptr(),
		}
		if err := items.UpsertEquipmentItem(ctx, item); err != nil {
			return fmt.Errorf("failed to upsert demo item %s: %w", d.Serial, err)
		}
	}

	for _, c := range demoChecks {
		d := today.AddDays(c.Offset)
		check := &types.EquipmentCheck{
			ID:               c.ID,
			EquipmentItemID:  c.ItemID,
			CheckedBy:        utils.StringPtr(c.Assignee),
			CheckDate:        d.Ptr(),
			NextCheckDate:    d.Ptr(),
			Result:           utils.StringPtr(c.Result),
			VerificationType: utils.StringPtr(c.Type),
			Priority:         utils.StringPtr(string(c.Priority)),
		}
		if err := checks.UpsertCheck(ctx, check); err != nil {
			return fmt.Errorf("failed to upsert demo check %s: %w", c.ID, err)
		}
	}

	fmt.Printf("Demo data seeded: %d items, %d checks\n", len(demoItems), len(demoChecks))
	return nil
}
