package commands

import (
	"github.com/spf13/cobra"

	"github.com/milk9111/hexnav/levels"
)

func newMapsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "maps",
		Short: "List the built-in maps and scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.print.Step("maps\n")
			for _, name := range levels.MapNames() {
				g, err := levels.LoadMap(name)
				if err != nil {
					a.print.Warning("%s: %v\n", name, err)
					continue
				}
				cols, rows := g.Size()
				a.print.Info("  %-10s %2dx%-2d %4d water cells\n", name, cols, rows, g.Len())
			}
			a.print.Step("scenarios\n")
			for _, name := range levels.ScenarioNames() {
				s, err := levels.LoadScenario(name)
				if err != nil {
					a.print.Warning("%s: %v\n", name, err)
					continue
				}
				a.print.Info("  %-10s map %-10s %d agents\n", name, s.Map, len(s.Agents))
			}
			return nil
		},
	}
}
