package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/config"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/infoblox"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/logger"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/reconcile"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/feature/zonesync"
)

var (
	syncDryRun bool
	syncZone   string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one bi-directional reconciliation of the configured zone",
	Long: `sync loads the zone's A records from both views, plans the missing
records in each direction and creates them with provenance markers.
Conflicts are printed for manual resolution and never resolved
automatically.

The exit code is non-zero only when a view snapshot cannot be loaded.
Individual record creation failures are reported but do not fail the
run; the next run retries them.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "plan only, do not create any records")
	syncCmd.Flags().StringVar(&syncZone, "zone", "", "override the configured zone name")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	if syncZone != "" {
		cfg.DNS.ZoneName = syncZone
	}
	if err := cfg.DNS.Validate(); err != nil {
		return err
	}

	client := infoblox.NewClient(cfg.Infoblox, logg)
	service := zonesync.NewService(cfg.DNS, client, logg)

	result, err := service.Sync(context.Background(), reconcile.Options{DryRun: syncDryRun})
	if err != nil {
		return err
	}

	printResult(result)

	logg.Info("sync finished",
		zap.String("run_id", result.Plan.RunID),
		zap.Int("planned", len(result.Plan.Creations)),
		zap.Int("conflicts", len(result.Plan.Conflicts)))
	return nil
}
