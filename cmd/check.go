package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/config"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/infoblox"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/logger"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/feature/zonesync"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify API connectivity and view access without writing anything",
	Long: `check resolves both configured views and lists the zone's A records
in each, proving the token can reach everything a sync run needs.`,
	RunE: runCheck,
}

func init() {
	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	if err := cfg.DNS.Validate(); err != nil {
		return err
	}

	client := infoblox.NewClient(cfg.Infoblox, logg)
	service := zonesync.NewService(cfg.DNS, client, logg)

	statuses := service.Check(context.Background())
	printCheck(statuses)

	failed := 0
	for _, st := range statuses {
		if !st.OK() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("preflight failed for %d of %d views", failed, len(statuses))
	}
	return nil
}
