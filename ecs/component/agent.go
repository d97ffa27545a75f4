package component

// Agent marks a controllable mover.
type Agent struct {
	ID   string
	Name string
	// Selected agents receive click requests.
	Selected bool
}

var AgentComponent = NewComponent[Agent]()
