package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/codequest-rpg/dungeon-engine/internal/content"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the YAML content fixtures into the catalog store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			provider, cfg, err := buildProvider(ctx)
			if err != nil {
				return err
			}

			bundle, err := content.LoadDir(cfg.Content.Dir)
			if err != nil {
				return err
			}

			if err := bundle.Seed(ctx, provider.Catalog); err != nil {
				return err
			}

			log.Printf("Seeded %d abilities, %d enemies, %d bosses, %d locations, %d choices, %d outcomes",
				len(bundle.Abilities), len(bundle.Enemies), len(bundle.Bosses),
				len(bundle.Locations), len(bundle.Choices), len(bundle.Outcomes))
			return nil
		},
	}
}
