package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/levels"
	"github.com/milk9111/hexnav/pathfind"
)

type pathOptions struct {
	mapName string
	from    string
	to      string
	ascii   bool
}

func newPathCmd(a *app) *cobra.Command {
	opts := &pathOptions{}
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Find the shortest path between two water cells",
		Example: `  hexnav path --from 0,0 --to 8,0
  hexnav path --map strait --from 0,0 --to 10,0 --ascii`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(cmd, a, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.mapName, "map", "m", "", "map name or path (default from config)")
	cmd.Flags().StringVar(&opts.from, "from", "0,0", "start cell as axial x,y")
	cmd.Flags().StringVar(&opts.to, "to", "", "destination cell as axial x,y")
	cmd.Flags().BoolVar(&opts.ascii, "ascii", false, "draw the path over the map")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func runPath(cmd *cobra.Command, a *app, opts *pathOptions) error {
	a.useMap(opts.mapName)
	g, err := levels.LoadMap(a.mapName())
	if err != nil {
		return reported(a.print.Error("Cannot load map", err.Error(), "Run 'hexnav maps' to list the built-in maps"))
	}

	start, err := lookupCell(g, opts.from)
	if err != nil {
		return reported(a.print.Error("Invalid --from", err.Error()))
	}
	dest, err := lookupCell(g, opts.to)
	if err != nil {
		return reported(a.print.Error("Invalid --to", err.Error()))
	}

	res, err := pathfind.New(a.logger).Find(cmd.Context(), start, dest)
	switch {
	case errors.Is(err, pathfind.ErrDisconnected):
		return reported(a.print.Error("No path",
			fmt.Sprintf("%s cannot be reached from %s: the water cells are not connected.", dest, start)))
	case err != nil:
		return err
	}

	a.print.Success("path found: %d cells, cost %d, %d expanded in %s\n", len(res.Path), res.Cost, res.Expanded, res.Elapsed)
	a.print.Info("%s\n", res.Path)
	if opts.ascii {
		a.print.Info("\n%s", g.Render(pathMarks(res.Path)))
	}
	return nil
}

func lookupCell(g *hexgrid.Grid, s string) (*hexgrid.Cell, error) {
	c, err := hexgrid.ParseCoord(s)
	if err != nil {
		return nil, err
	}
	cell, ok := g.Cell(c)
	if !ok {
		return nil, fmt.Errorf("%s is not a water cell", c)
	}
	return cell, nil
}

// pathMarks marks the start S, the destination D and the cells between *.
func pathMarks(p pathfind.Path) map[hexgrid.Coord]rune {
	marks := make(map[hexgrid.Coord]rune, len(p))
	for _, c := range p.Coords() {
		marks[c] = '*'
	}
	if start := p.Start(); start != nil {
		marks[start.Coord()] = 'S'
	}
	if end := p.End(); end != nil && len(p) > 1 {
		marks[end.Coord()] = 'D'
	}
	return marks
}
