package main

import (
	"fmt"
	"strconv"

	"github.com/spboyer/llmcompare/internal/prefs"
	"github.com/spf13/cobra"
)

var scenariosFormat string

func newScenariosCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Manage saved recommendation scenarios",
		Long: `Manage scenarios saved with "llmcompare recommend --save".

Run a scenario again with "llmcompare recommend --scenario <name>".`,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved scenarios",
		Args:  cobra.NoArgs,
		RunE:  scenariosListE,
	}
	list.Flags().StringVarP(&scenariosFormat, "format", "f", "", "Output format: table or json")

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  scenariosDeleteE,
	}

	cmd.AddCommand(list, del)
	return cmd
}

func scenariosListE(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	format := firstNonEmpty(scenariosFormat, e.cfg.Defaults.Format)
	if err := checkFormat(format, formatTable, formatJSON); err != nil {
		return err
	}

	all, err := prefs.NewScenarios(e.store).List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, all)
	}
	if len(all) == 0 {
		fmt.Fprintln(out, "No saved scenarios.") //nolint:errcheck
		return nil
	}

	t := newTable("Name", "Task", "Priority", "Budget", "Min MMLU", "Min context", "Saved")
	for _, s := range all {
		c := s.Constraints()
		t.add(
			s.Name,
			s.Task,
			s.Priority,
			formatBudget(c),
			strconv.FormatFloat(c.MinQualityScore, 'f', -1, 64),
			formatTokens(c.MinContextWindow),
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	t.render(out)
	return nil
}

func scenariosDeleteE(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if err := prefs.NewScenarios(e.store).Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted scenario %q\n", args[0]) //nolint:errcheck
	return nil
}
