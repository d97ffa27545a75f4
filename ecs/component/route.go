package component

import "github.com/milk9111/hexnav/hexgrid"

// Route is a scripted sequence of destinations.
type Route struct {
	Waypoints []hexgrid.Coord
	Next      int
	Loop      bool
}

// Done reports whether every waypoint has been issued.
func (r *Route) Done() bool {
	return !r.Loop && r.Next >= len(r.Waypoints)
}

var RouteComponent = NewComponent[Route]()
