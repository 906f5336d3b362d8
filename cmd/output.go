package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/reconcile"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/feature/zonesync"
)

type creationKey struct {
	view     string
	hostname string
	address  string
}

// printResult renders the outcome of a run as tables on stdout.
func printResult(result *reconcile.Result) {
	plan := result.Plan
	fmt.Printf("Zone %s: %s <-> %s\n\n", plan.Zone, plan.ViewA, plan.ViewB)

	if len(plan.Creations) == 0 {
		fmt.Println("Both views already agree, nothing to create.")
	} else {
		failures := make(map[creationKey]string, len(plan.Creations))
		if result.Applied != nil {
			for _, f := range result.Applied.Failures {
				failures[creationKey{f.Creation.TargetView, f.Creation.Hostname, f.Creation.Address}] = f.Reason
			}
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Hostname", "Address", "Direction", "Status"})
		table.SetAutoWrapText(false)
		for _, c := range plan.Creations {
			status := "planned"
			if result.Applied != nil {
				if reason, ok := failures[creationKey{c.TargetView, c.Hostname, c.Address}]; ok {
					status = "failed: " + reason
				} else {
					status = "created"
				}
			}
			table.Append([]string{c.Hostname, c.Address, c.SourceView + " -> " + c.TargetView, status})
		}
		table.Render()
	}

	if len(plan.Conflicts) > 0 {
		fmt.Println("\nConflicts requiring manual resolution:")
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Hostname", plan.ViewA, plan.ViewB})
		table.SetAutoWrapText(false)
		for _, c := range plan.Conflicts {
			table.Append([]string{c.Hostname, strings.Join(c.AddressesA, " "), strings.Join(c.AddressesB, " ")})
		}
		table.Render()
	}

	s := plan.Summary
	fmt.Printf("\nRecords: %s=%d %s=%d, identical: %d, already propagated: %d\n",
		plan.ViewA, s.RecordsA, plan.ViewB, s.RecordsB, s.Identical, s.AlreadyPropagated)
	if result.Applied != nil {
		fmt.Printf("Created %s->%s: %d, %s->%s: %d, failed: %d, conflicts: %d\n",
			plan.ViewA, plan.ViewB, result.Applied.CreatedAToB,
			plan.ViewB, plan.ViewA, result.Applied.CreatedBToA,
			len(result.Applied.Failures), len(plan.Conflicts))
	} else {
		fmt.Printf("Planned %s->%s: %d, %s->%s: %d, conflicts: %d (dry run, nothing written)\n",
			plan.ViewA, plan.ViewB, s.MissingAToB,
			plan.ViewB, plan.ViewA, s.MissingBToA,
			len(plan.Conflicts))
	}
}

// printCheck renders the preflight view report.
func printCheck(statuses []zonesync.ViewStatus) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"View", "View ID", "Records", "Status"})
	table.SetAutoWrapText(false)
	for _, st := range statuses {
		status := "ok"
		if !st.OK() {
			status = st.Error
		}
		table.Append([]string{st.View, st.ViewID, fmt.Sprintf("%d", st.Records), status})
	}
	table.Render()
}
