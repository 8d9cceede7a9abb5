package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/swimmeet/internal/core"
	"github.com/JonMunkholm/swimmeet/internal/termview"
	"github.com/JonMunkholm/swimmeet/internal/ui/datatable"
	"github.com/JonMunkholm/swimmeet/internal/web/templates"
)

var rosterFlags struct {
	tenant string
	filter core.SwimmerFilter
	layout string
	width  int
	plain  bool
}

// rosterCmd prints a tenant's roster with the same projection the web page
// uses.
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Print the swimmer roster",
	Long: `Prints the roster of a tenant as a table, or as cards on narrow
terminals. The filters match the web toolbar.

Example:
  swimmeet roster --search shark --gender F --width 80`,
	Args: cobra.NoArgs,
	RunE: runRoster,
}

func init() {
	f := rosterCmd.Flags()
	f.StringVar(&rosterFlags.tenant, "tenant", "", "tenant id (default TENANT_DEFAULT_ID)")
	f.StringVar(&rosterFlags.filter.Search, "search", "", "match swimmer or team name")
	f.StringVar(&rosterFlags.filter.Team, "team", core.FilterAll, `team id, "none" or "all"`)
	f.StringVar(&rosterFlags.filter.Gender, "gender", core.FilterAll, `M, F or "all"`)
	f.StringVar(&rosterFlags.layout, "layout", "responsive", "desktop, mobile or responsive")
	f.IntVar(&rosterFlags.width, "width", terminalWidth(), "terminal width used by the responsive layout")
	f.BoolVar(&rosterFlags.plain, "plain", false, "disable colour")
}

func runRoster(cmd *cobra.Command, args []string) error {
	layout, ok := datatable.ParseLayout(rosterFlags.layout)
	if !ok {
		return fmt.Errorf("unknown layout %q", rosterFlags.layout)
	}
	tenant := rosterFlags.tenant
	if tenant == "" {
		tenant = cfg.Tenant.DefaultID
	}

	ctx := cmd.Context()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	service := core.NewService(store, nil, nil)
	roster, err := service.Roster(ctx, tenant)
	if err != nil {
		return fmt.Errorf("load roster: %s", core.FormatUserError(err))
	}
	visible := core.FilterSwimmers(roster.Swimmers, rosterFlags.filter)

	view, err := datatable.Build(datatable.Props[core.Swimmer]{
		Data:         visible,
		Columns:      templates.SwimmerColumns(service.Now(), false),
		KeyExtractor: func(s core.Swimmer, _ int) string { return s.ID },
		EmptyMessage: emptyMessage(len(roster.Swimmers), rosterFlags.filter),
		Layout:       layout,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := termview.Render(ctx, out, view, termview.Options{Width: rosterFlags.width, Plain: rosterFlags.plain}); err != nil {
		return err
	}
	if len(visible) > 0 {
		_, err = fmt.Fprintf(out, "%d of %d swimmers\n", len(visible), len(roster.Swimmers))
	}
	return err
}

func emptyMessage(total int, f core.SwimmerFilter) string {
	if total > 0 && f.Active() {
		return "no swimmers match the filters"
	}
	return "no swimmers"
}

// terminalWidth reads $COLUMNS, falling back to the table breakpoint.
func terminalWidth() int {
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return termview.Breakpoint
}
