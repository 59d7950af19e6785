package response

// ConveyorSystem is the list/detail view of a conveyor system
type ConveyorSystem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	EdgeCount   int64  `json:"edgeCount"`
}

// ConveyorEdgeRef points at an edge referencing a conveyor system
type ConveyorEdgeRef struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	LayoutID string `json:"layoutId"`
}

// ConveyorSystemWithEdges is the detail view including referencing edges
type ConveyorSystemWithEdges struct {
	ConveyorSystem
	Edges []ConveyorEdgeRef `json:"edges"`
}
