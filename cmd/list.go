package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ukydev/ev-fleet-dashboard/internal/mapview"
	"github.com/ukydev/ev-fleet-dashboard/internal/models"
	"github.com/ukydev/ev-fleet-dashboard/internal/view"
)

func newListCmd(envFile *string) *cobra.Command {
	var (
		search   string
		nowFlag  string
		selected int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the fleet with derived status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			clock := cfg.Clock()
			if nowFlag != "" {
				t, err := time.Parse(time.RFC3339, nowFlag)
				if err != nil {
					return fmt.Errorf("invalid --now: %w", err)
				}
				clock = func() time.Time { return t }
			}

			store, err := openFleet(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			state := models.ViewState{Search: search}
			if cmd.Flags().Changed("selected") {
				state.SelectedID = &selected
			}
			d := view.NewController(store, mapview.NewRecorder(), clock).Dashboard(state)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NUMBER\tSUPERVISOR\tSTATUS\tUPDATED")
			for _, row := range d.Rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Vehicle.Number, row.Vehicle.Supervisor, row.Status.Label(), row.RelativeAge)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%d active / %d vehicles\n", d.Stats.ActiveCount, d.Stats.Total)
			if d.SelectedID != nil {
				fmt.Fprintf(out, "Focus: %s zoom %d\n", view.FormatPosition(d.Focus.Center), d.Focus.Zoom)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by vehicle number or supervisor")
	cmd.Flags().StringVar(&nowFlag, "now", "", "evaluate status at this RFC 3339 instant")
	cmd.Flags().IntVar(&selected, "selected", 0, "vehicle id to focus")
	return cmd
}
