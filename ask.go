package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"insightiq/backend"
	"insightiq/logger"
	"insightiq/render"
	"insightiq/workspace"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question and print the result",
	Long: `Ask one question and print the rendered result.

Example:
  insightiq ask --dataset 3 "revenue by month"
  insightiq ask --demo "show churn"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List datasets on the backend",
	Args:  cobra.NoArgs,
	RunE:  runDatasets,
}

var deleteDatasetCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteDataset,
}

func init() {
	askCmd.Flags().Int64("dataset", 0, "dataset id to query")
	datasetsCmd.AddCommand(deleteDatasetCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	ws := workspace.New(workspaceOptions(cfg, "cli", newBackend(cfg, log, nil), log))
	ctx := cmd.Context()

	if id, _ := cmd.Flags().GetInt64("dataset"); id != 0 && ws.Mode() == workspace.ModeBackend {
		if _, err := ws.RefreshDatasets(ctx); err != nil {
			return err
		}
		if _, err := ws.Select(id); err != nil {
			return fmt.Errorf("dataset %d: %w", id, err)
		}
	}

	state, err := ws.Ask(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", state.Query)
	if res := state.Result; res != nil {
		if res.Explanation != "" {
			fmt.Fprintf(out, "%s\n", res.Explanation)
		}
		fmt.Fprintf(out, "%s, %dms, %.0f%% confidence\n", res.VisualizationType, res.ExecutionTime, res.Confidence*100)
		if res.SQL != "" {
			fmt.Fprintf(out, "\n%s\n", res.SQL)
		}
	}
	fmt.Fprintln(out)
	return render.Text(out, state.View)
}

func runDatasets(cmd *cobra.Command, args []string) error {
	client, err := cliBackend(cmd)
	if err != nil {
		return err
	}
	list, err := client.ListDatasets(cmd.Context())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tROWS\tCOLUMNS\tCREATED")
	for _, ds := range list.Datasets {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", ds.ID, ds.Name, humanize.Comma(int64(ds.RowCount)), ds.ColumnCount, ds.CreatedAt)
	}
	return tw.Flush()
}

func runDeleteDataset(cmd *cobra.Command, args []string) error {
	id, err := backend.ParseID(args[0])
	if err != nil {
		return err
	}
	client, err := cliBackend(cmd)
	if err != nil {
		return err
	}
	resp, err := client.DeleteDataset(cmd.Context(), id)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
	return nil
}

func cliBackend(cmd *cobra.Command) (*backend.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	client := newBackend(cfg, logger.New(cfg.LogLevel, cfg.LogFormat), nil)
	if client == nil {
		return nil, fmt.Errorf("no backend configured (demo mode)")
	}
	return client, nil
}
