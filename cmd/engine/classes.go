package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tabletop-engine/internal/clients/dnd5e"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/rulebook"
)

var (
	fetchMaxLevel int
	fetchOut      string
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Inspect and build class catalogs",
}

var listClassesCmd = &cobra.Command{
	Use:   "list",
	Short: "List the classes in the configured catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := rulebook.DefaultCatalog()
		if cfg.Engine.ClassesFile != "" {
			loaded, err := rulebook.LoadCatalogFile(cfg.Engine.ClassesFile)
			if err != nil {
				return err
			}
			catalog = loaded
		}

		for _, class := range catalog.Classes() {
			features, spells := class.UnlocksThrough(20)
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s d%-2d %2d features %2d spells\n", class.Key, class.HitDie, len(features), len(spells))
		}
		return nil
	},
}

var fetchClassesCmd = &cobra.Command{
	Use:   "fetch [class-key...]",
	Short: "Build a catalog from the D&D 5e API",
	Long: `Fetches hit dice and per-level features from the D&D 5e API and writes a YAML
catalog usable as ENGINE_CLASSES_FILE.

  Example: engine classes fetch fighter wizard --out classes.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetchClasses,
}

func init() {
	fetchClassesCmd.Flags().IntVar(&fetchMaxLevel, "max-level", 20, "highest level to fetch")
	fetchClassesCmd.Flags().StringVar(&fetchOut, "out", "", "write to this file instead of stdout")
	classesCmd.AddCommand(listClassesCmd, fetchClassesCmd)
}

func runFetchClasses(cmd *cobra.Command, args []string) error {
	client, err := dnd5e.New(&dnd5e.Config{
		HttpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		BaseURL: cfg.DND5E.BaseURL,
		Logger:  logger.Named("dnd5e"),
	})
	if err != nil {
		return fmt.Errorf("failed to create D&D 5e client: %w", err)
	}

	catalog, err := rulebook.NewCatalog()
	if err != nil {
		return err
	}
	if err := client.LoadCatalog(cmd.Context(), catalog, args, fetchMaxLevel); err != nil {
		return err
	}

	data, err := catalog.Encode()
	if err != nil {
		return err
	}

	if fetchOut == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(fetchOut, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", fetchOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d classes to %s\n", len(args), fetchOut)
	return nil
}
