// SPDX-License-Identifier: EPL-2.0

package graph

// State is the lifecycle position of a Session.
type State int

const (
	Uninitialized State = iota
	SessionOpen
	BackendConfigured
	GraphBuilt
	Connected
	ParamConfigured
	Streaming
	Disconnected
	Closed
)

var stateNames = [...]string{
	Uninitialized:     "uninitialized",
	SessionOpen:       "session-open",
	BackendConfigured: "backend-configured",
	GraphBuilt:        "graph-built",
	Connected:         "connected",
	ParamConfigured:   "param-configured",
	Streaming:         "streaming",
	Disconnected:      "disconnected",
	Closed:            "closed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}

	return stateNames[s]
}

// Policy decides what a missing module means to ConfigureModule.
type Policy int

const (
	// Optional modules that are absent from the graph are skipped.
	Optional Policy = iota
	// Mandatory modules that are absent fail the session.
	Mandatory
)

func (p Policy) String() string {
	if p == Mandatory {
		return "mandatory"
	}

	return "optional"
}
