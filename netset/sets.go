// Package netset is the Network/Set Deriver of spec §4.2: from raw
// node/period/product/mode tables it produces the closed set family of
// §3.1 plus a per-node record with typing, adjacency flags, and
// launch/shutdown bounds. Grounded on
// original_source/src/models/network.py (class Network) and
// original_source/src/models/node.py (class Node).
package netset

import (
	"sort"
	"strconv"

	"github.com/nextmv-community/network-planner/planerr"
	"github.com/nextmv-community/network-planner/tables"
)

// Node is the per-node record of spec §3.1/§4.2, grounded on
// original_source/src/models/node.py::Node.
type Node struct {
	Name     string
	NodeType string
	Groups   []string

	IsOrigin       bool
	IsDestination  bool
	IsIntermediate bool

	CanReceiveFromOrigins      bool
	CanReceiveFromIntermediates bool
	CanSendToDestinations      bool
	CanSendToIntermediates     bool

	MinLaunches int
	MaxLaunches int

	MinOperatingDuration int
	MaxOperatingDuration int

	MinShutdowns int
	// MaxShutDownCount is read from the "Max Launches" column, not "Max
	// Shut Down Count" — preserving the source's column naming (spec §9
	// open question 1: "likely a copy-paste typo"), while the field name
	// here reflects the intended semantics so call sites read correctly.
	MaxShutDownCount int

	MinShutdownDuration int
	MaxShutdownDuration int
}

// Sets is the frozen set family of spec §3.1. Every field is an ordered,
// deduplicated slice of string identifiers; periods/ages are numerically
// ordered string-ints.
type Sets struct {
	Nodes          []string
	Origins        []string
	Destinations   []string
	Intermediates  []string
	DepartingNodes []string
	ReceivingNodes []string

	NodeGroups []string
	NodeTypes  []string

	Periods []string
	Ages    []string

	Products    []string
	Measures    []string
	Modes       []string
	Containers  []string

	CCapacityExpansions []string
	TCapacityExpansions []string

	Resources                   []string
	ResourceCapacityTypes       []string
	ResourceParentCapacityTypes []string
	ResourceChildCapacityTypes  []string
	ResourceAttributes          []string

	TransportationGroups []string
}

// Registry bundles the Sets with the Node records the constraint builders
// need for adjacency/typing lookups.
type Registry struct {
	Sets  Sets
	Nodes map[string]Node
}

// Derive builds the Registry for one (already scenario-filtered) table
// set, equivalent to Network.__init__ + Network.get_all_sets() +
// Network.validate_network() in models/network.py. It returns
// InputStructural errors (collected, per §7) and a separate warning list
// for non-fatal issues (unreachable destinations, ungrouped nodes) that
// original_source logs via `logging.warning` rather than raising.
func Derive(t tables.Set) (*Registry, []string, error) {
	var errs planerr.ValidationErrors

	nodesTbl := t.Get("nodes")
	errs = errs.Add(nodesTbl.RequireColumns(
		"Name", "Node Type", "Origin Node", "Destination Node", "Intermediate Node",
		"Receive from Origins", "Receive from Intermediates",
		"Send to Destinations", "Send to Intermediates",
	))
	if err := errs.AsError(); err != nil {
		return nil, nil, err
	}

	nodeGroupsByNode := map[string][]string{}
	for _, r := range t.Get("node_groups").Rows {
		nodeGroupsByNode[r["Node"]] = append(nodeGroupsByNode[r["Node"]], r["Group"])
	}

	nodes := map[string]Node{}
	var order []string
	for _, r := range nodesTbl.Rows {
		n := Node{
			Name:                        r["Name"],
			NodeType:                    r["Node Type"],
			Groups:                      nodeGroupsByNode[r["Name"]],
			IsOrigin:                    r["Origin Node"] == "X",
			IsDestination:               r["Destination Node"] == "X",
			IsIntermediate:              r["Intermediate Node"] == "X",
			CanReceiveFromOrigins:       r["Receive from Origins"] == "X",
			CanReceiveFromIntermediates: r["Receive from Intermediates"] == "X",
			CanSendToDestinations:       r["Send to Destinations"] == "X",
			CanSendToIntermediates:      r["Send to Intermediates"] == "X",
			MinLaunches:                 atoi(r["Min Launches"]),
			MaxLaunches:                 atoi(r["Max Launches"]),
			MinOperatingDuration:        atoi(r["Min Operating Duration"]),
			MaxOperatingDuration:        atoi(r["Max Operating Duration"]),
			MinShutdowns:                atoi(r["Min Shutdowns"]),
			MaxShutDownCount:            atoi(r["Max Launches"]), // §9 open question 1
			MinShutdownDuration:         atoi(r["Min Shutdown Duration"]),
			MaxShutdownDuration:         atoi(r["Max Shutdown Duration"]),
		}
		typeCount := boolToInt(n.IsOrigin) + boolToInt(n.IsDestination) + boolToInt(n.IsIntermediate)
		if typeCount != 1 {
			errs = errs.Add(planerr.New(planerr.KindInputStructural,
				"node "+n.Name+" must be exactly one type: origin, destination, or intermediate"))
			continue
		}
		nodes[n.Name] = n
		order = append(order, n.Name)
	}
	if err := errs.AsError(); err != nil {
		return nil, nil, err
	}

	sets := Sets{Nodes: order}
	for _, n := range order {
		nd := nodes[n]
		if nd.IsOrigin {
			sets.Origins = append(sets.Origins, n)
		}
		if nd.IsDestination {
			sets.Destinations = append(sets.Destinations, n)
		}
		if nd.IsIntermediate {
			sets.Intermediates = append(sets.Intermediates, n)
		}
	}
	sets.DepartingNodes = dedupOrdered(append(append([]string{}, sets.Origins...), sets.Intermediates...))
	sets.ReceivingNodes = dedupOrdered(append(append([]string{}, sets.Intermediates...), sets.Destinations...))

	sets.NodeTypes = t.Get("node_types").Distinct("Node Type")
	sets.NodeGroups = t.Get("node_groups").Distinct("Group")

	periods := t.Get("periods").Distinct("Period")
	sort.Slice(periods, func(i, j int) bool { return atoi(periods[i]) < atoi(periods[j]) })
	sets.Periods = periods
	for _, p := range periods {
		sets.Ages = append(sets.Ages, strconv.Itoa(atoi(p)-1))
	}

	sets.Products = t.Get("products").Distinct("Product")
	sets.Measures = t.Get("products").Distinct("Measure")

	sets.Containers = t.Get("transportation_costs").Distinct("Container")
	sets.Modes = t.Get("transportation_costs").Distinct("Mode")

	sets.CCapacityExpansions = orDefault(t.Get("carrying_expansions").Distinct("Incremental Capacity Label"), "NA")
	sets.TCapacityExpansions = orDefault(t.Get("transportation_expansions").Distinct("Incremental Capacity Label"), "NA")

	sets.TransportationGroups = t.Get("product_transportation_groups").Distinct("Group")

	sets.Resources = t.Get("resource_costs").Distinct("Resource")
	sets.ResourceCapacityTypes = t.Get("resource_capacity_types").Distinct("Capacity Type")
	parents := map[string]bool{}
	for _, r := range t.Get("resource_capacity_types").Rows {
		if p := r["Parent Capacity Type"]; p != "" {
			parents[p] = true
		}
	}
	for p := range parents {
		sets.ResourceParentCapacityTypes = append(sets.ResourceParentCapacityTypes, p)
	}
	sort.Strings(sets.ResourceParentCapacityTypes)
	for _, c := range sets.ResourceCapacityTypes {
		if !parents[c] {
			sets.ResourceChildCapacityTypes = append(sets.ResourceChildCapacityTypes, c)
		}
	}
	sets.ResourceAttributes = orDefault(t.Get("resource_attributes").Distinct("Resource Attribute"), "NA")

	reg := &Registry{Sets: sets, Nodes: nodes}

	var warnings []string
	for _, n := range order {
		nd := nodes[n]
		if nd.IsOrigin && nd.CanReceiveFromOrigins {
			warnings = append(warnings, "origin node "+n+" should not receive from origins")
		}
		if nd.IsDestination && nd.CanSendToDestinations {
			warnings = append(warnings, "destination node "+n+" should not send to destinations")
		}
		if len(nd.Groups) == 0 {
			warnings = append(warnings, "node "+n+" is not assigned to any groups")
		}
	}
	for _, d := range reg.unreachableDestinations() {
		warnings = append(warnings, "destination unreachable from any origin: "+d)
	}

	return reg, warnings, nil
}

// unreachableDestinations is the Go equivalent of
// Network._validate_flow_paths / _get_reachable_nodes: a BFS over the
// adjacency flags starting at every origin.
func (r *Registry) unreachableDestinations() []string {
	reachable := map[string]bool{}
	var queue []string
	for _, n := range r.Sets.Nodes {
		if r.Nodes[n].IsOrigin {
			queue = append(queue, n)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if reachable[cur] {
			continue
		}
		reachable[cur] = true
		queue = append(queue, r.downstreamOf(cur)...)
	}
	var unreachable []string
	for _, n := range r.Sets.Nodes {
		if r.Nodes[n].IsDestination && !reachable[n] {
			unreachable = append(unreachable, n)
		}
	}
	return unreachable
}

// downstreamOf mirrors Network._get_downstream_nodes: origins feed every
// node that can receive from origins; intermediates feed every node that
// can receive from intermediates.
func (r *Registry) downstreamOf(name string) []string {
	node := r.Nodes[name]
	var out []string
	for _, n := range r.Sets.Nodes {
		other := r.Nodes[n]
		switch {
		case node.IsOrigin && other.CanReceiveFromOrigins:
			out = append(out, n)
		case node.IsIntermediate && other.CanReceiveFromIntermediates:
			out = append(out, n)
		}
	}
	return out
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func dedupOrdered(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func orDefault(in []string, def string) []string {
	if len(in) == 0 {
		return []string{def}
	}
	return in
}
