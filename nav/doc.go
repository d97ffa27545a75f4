// Package nav drives an agent along hex paths.
//
// A Coordinator owns at most one navigation request at a time. RequestGoTo
// starts a search on a worker goroutine and returns immediately; Tick, called
// once per frame from the agent's goroutine, collects the search result and
// advances a Mover. A request that arrives while another is active cancels
// the active one and is queued; it starts once the cancellation has been
// acknowledged, so two search/move cycles never overlap.
//
// A Mover is an explicit state machine (Rotating, Translating, Done) over one
// path. Each Tick performs a single bounded step.
//
// Coordinator and Mover are not safe for concurrent use.
package nav
