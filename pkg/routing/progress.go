package routing

type Phase int

const (
	PhaseRoutingDirectly Phase = iota + 1
	PhaseFindingConnectingStations
	PhaseRoutingIndirectly
)

func (p Phase) String() string {
	switch p {
	case PhaseRoutingDirectly:
		return "ROUTING_DIRECTLY"
	case PhaseFindingConnectingStations:
		return "FINDING_CONNECTING_STATIONS"
	case PhaseRoutingIndirectly:
		return "ROUTING_INDIRECTLY"
	default:
		return "UNKNOWN"
	}
}

// Progress is reported synchronously by Engine.Route as it moves through its
// phases. It is one of RoutingDirectly, FindingConnectingStations or
// RoutingIndirectly.
type Progress interface {
	Phase() Phase
}

type ProgressFunc func(Progress)

type RoutingDirectly struct{}

func (RoutingDirectly) Phase() Phase { return PhaseRoutingDirectly }

type FindingConnectingStations struct {
	Total     int
	Completed int
}

func (FindingConnectingStations) Phase() Phase { return PhaseFindingConnectingStations }

type RoutingIndirectly struct {
	Total     int
	Completed int
}

func (RoutingIndirectly) Phase() Phase { return PhaseRoutingIndirectly }

// Counts returns the total and completed work of a progress update, zero for
// phases that do not track any
func Counts(progress Progress) (int, int) {
	switch p := progress.(type) {
	case FindingConnectingStations:
		return p.Total, p.Completed
	case RoutingIndirectly:
		return p.Total, p.Completed
	default:
		return 0, 0
	}
}
