package seed

import (
	"epitrack/internal/utils"
	"epitrack/pkg/types"
	"context"
	"fmt"
)

type TypeUpserter interface {
	UpsertType(ctx context.Context, equipmentType *types.EquipmentType) error
}

type FirefighterUpserter interface {
	UpsertFirefighter(ctx context.Context, firefighter *types.Firefighter) error
}

// equipmentTypes is the source of truth for the type catalogue. Rerunning the
// seed updates names in place; types added from the UI are left alone.
//
// To generate new IDs: `go run ./cmd/epitrack nanoid`
var equipmentTypes = []types.EquipmentType{
	{ID: "kJxyXeyrVTjzpTMKuqk8TyWMEBmq8jfn", Name: "Casque F1"},
	{ID: "JJ18uzJEZoTAaOWkYFbjx6I3BkJ5POmr", Name: "Tenue de feu"},
	{ID: "I0D4nkGW66sQjxtZUonoP6wCmrs3y80x", Name: "Bottes"},
	{ID: "ouTIYVzQPQmR23guXxPThUuRfzeZPSnm", Name: "Gants"},
	{ID: "MrRW0IS70OZy1eK9EnF68d8ucs0nuROj", Name: "ARI (Appareil Respiratoire)"},
	{ID: "GBKXO5LFr81puyEm7iQ7nd8ndJfWeav9", Name: "Lampe"},
	{ID: "LPRWi2WkUCGtBRN9aNNf1Aob8CMvH3uE", Name: "Hache"},
	{ID: "CQYlPA2esxbMjRHyqwmk7qJcCRbcoTO5", Name: "Corde"},
}

// Starter roster
var roster = []types.Firefighter{
	{ID: "DuduiIDZEx3SagniMra7BmMwsMz1f2rs", FirstName: "Martin", LastName: "Dubois", Email: utils.StringPtr("martin.dubois@sdis.example.fr"), Station: utils.StringPtr(types.DefaultStation), Grade: utils.StringPtr("Sergent")},
	{ID: "gmzGq7oAO4ikrSUn7jAXjsyjAaxaPOyA", FirstName: "Sophie", LastName: "Laurent", Email: utils.StringPtr("sophie.laurent@sdis.example.fr"), Station: utils.StringPtr(types.DefaultStation), Grade: utils.StringPtr("Caporal")},
	{ID: "nUaZL9ryIpRnNSEVEIvoToUBduwBpkpf", FirstName: "Pierre", LastName: "Moreau", Email: utils.StringPtr("pierre.moreau@sdis.example.fr"), Station: utils.StringPtr("CS Nord"), Grade: utils.StringPtr("Adjudant")},
	{ID: "qdouklJzqBtvIz28MkImOgFIJQwtO2XW", FirstName: "Marie", LastName: "Durand", Email: utils.StringPtr("marie.durand@sdis.example.fr"), Station: utils.StringPtr("CS Nord"), Grade: utils.StringPtr(types.DefaultGrade)},
	{ID: "cvrEDZhCuypH6xQXArb47NNBN8ROL8zd", FirstName: "Jean", LastName: "Lefebvre", Email: utils.StringPtr("jean.lefebvre@sdis.example.fr"), Station: utils.StringPtr(types.DefaultStation), Grade: utils.StringPtr("Lieutenant")},
}

func SeedEquipmentTypes(ctx context.Context, repo TypeUpserter) error {
	fmt.Printf("Syncing %d equipment types...\n", len(equipmentTypes))

	for _, t := range equipmentTypes {
		fmt.Printf("  Upserting equipment type: %s\n", t.Name)
		if err := repo.UpsertType(ctx, &t); err != nil {
			return fmt.Errorf("failed to upsert equipment type %s: %w", t.Name, err)
		}
	}

	fmt.Printf("Equipment types seeded: %d upserted\n", len(equipmentTypes))
	return nil
}

func SeedPersonnel(ctx context.Context, repo FirefighterUpserter) error {
	for _, f := range roster {
		if err := repo.UpsertFirefighter(ctx, &f); err != nil {
			return fmt.Errorf("failed to upsert firefighter %s: %w", f.ID, err)
		}
	}

	fmt.Printf("Personnel seeded: %d upserted\n", len(roster))
	return nil
}
