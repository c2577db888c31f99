package graph

import "math"

// RelaxEpsHighPrecision and RelaxEpsRelaxed are the two detection-pass
// tolerances: a tight one for the oracle-grade classic and single-source
// runs, a looser one for the super-source and benchmark runs.
const (
	RelaxEpsHighPrecision = 1e-9
	RelaxEpsRelaxed       = 1e-6
)

// Run executes one Bellman-Ford pass from source over edges (V nodes) and
// returns every negative cycle witnessed during the final relaxation scan,
// in the order their witness edges were scanned. It does not filter by
// length or profit; callers apply the acceptance policy separately.
//
// Edges are relaxed in their fixed insertion order on every pass, so
// repeated runs over the same graph produce the same witnesses.
func Run(source int, edges []Edge, v int, eps float64) []Cycle {
	if v == 0 {
		return nil
	}

	dist := make([]float64, v)
	parent := make([]int, v)
	parentEdge := make([]int, v)
	for i := range dist {
		dist[i] = math.Inf(1)
		parent[i] = -1
		parentEdge[i] = -1
	}
	dist[source] = 0

	for i := 0; i < v-1; i++ {
		for ei := range edges {
			e := &edges[ei]
			if dist[e.Source] != math.Inf(1) && dist[e.Source]+e.Weight < dist[e.Dest] {
				dist[e.Dest] = dist[e.Source] + e.Weight
				parent[e.Dest] = e.Source
				parentEdge[e.Dest] = ei
			}
		}
	}

	var found []Cycle
	for ei := range edges {
		e := &edges[ei]
		if dist[e.Source] == math.Inf(1) || dist[e.Source]+e.Weight >= dist[e.Dest]-eps {
			continue
		}

		// The relaxation loop above may not have set parent[e.Dest] to this
		// edge even though it is the witness; extraction walks parent[]
		// backward, so the witness edge must be recorded here first.
		parent[e.Dest] = e.Source
		parentEdge[e.Dest] = ei

		cyc, ok := extractCycle(e.Dest, v, parent, parentEdge, edges)
		if ok {
			found = append(found, cyc)
		}
	}
	return found
}

// Cycle is an ordered sequence of node ids forming a closed directed walk,
// cycle.Nodes[i] -> cycle.Nodes[(i+1)%len(cycle.Nodes)] via the edge at
// cycle.EdgeIdx[i].
type Cycle struct {
	Nodes   []int
	EdgeIdx []int
}

// Len returns the number of nodes (and edges) in the cycle.
func (c Cycle) Len() int { return len(c.Nodes) }

// extractCycle walks parent[] backward from start exactly v times to land
// inside the cycle, then follows parent[] again collecting nodes until it
// returns to the landing point, and reverses them into forward order.
func extractCycle(start, v int, parent, parentEdge []int, edges []Edge) (Cycle, bool) {
	x := start
	for i := 0; i < v; i++ {
		if x == -1 {
			return Cycle{}, false
		}
		x = parent[x]
	}
	if x == -1 {
		return Cycle{}, false
	}

	var walk []int
	cur := x
	for {
		walk = append(walk, cur)
		cur = parent[cur]
		if cur == x || cur == -1 {
			break
		}
	}
	if cur == -1 {
		return Cycle{}, false
	}

	// walk was collected backward (from x following parent pointers); the
	// forward cycle order is its reverse.
	n := len(walk)
	nodes := make([]int, n)
	for i, node := range walk {
		nodes[n-1-i] = node
	}

	edgeIdx, ok := consistentEdges(nodes, parentEdge, edges)
	if !ok {
		return Cycle{}, false
	}
	return Cycle{Nodes: nodes, EdgeIdx: edgeIdx}, true
}

// consistentEdges verifies that every adjacent pair in nodes is linked by
// the exact edge parentEdge claims, guarding against a witness pointing
// into a transient, inconsistent parent chain, and returns the edge index
// used for each step.
func consistentEdges(nodes []int, parentEdge []int, edges []Edge) ([]int, bool) {
	n := len(nodes)
	idx := make([]int, n)
	for i := 0; i < n; i++ {
		to := nodes[(i+1)%n]
		pe := parentEdge[to]
		if pe < 0 || pe >= len(edges) {
			return nil, false
		}
		e := &edges[pe]
		if e.Source != nodes[i] || e.Dest != to {
			return nil, false
		}
		idx[i] = pe
	}
	return idx, true
}

// Profit returns the product of the prices along cycle's edges. Returns
// (0, false) if any edge price is not finite and positive or any
// intermediate product is non-finite.
func Profit(cycle Cycle, edges []Edge) (float64, bool) {
	profit := 1.0
	for _, ei := range cycle.EdgeIdx {
		p := edges[ei].Price
		if !isFinitePositive(p) {
			return 0, false
		}
		profit *= p
		if !isFinite(profit) {
			return 0, false
		}
	}
	return profit, true
}
