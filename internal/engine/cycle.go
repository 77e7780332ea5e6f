package engine

// aliasGraph maps a variable name to the names its queued updates alias.
// nodes keeps first-seen order so that analysis is deterministic.
type aliasGraph struct {
	nodes []string
	edges map[string][]string
}

func newAliasGraph() *aliasGraph {
	return &aliasGraph{edges: make(map[string][]string)}
}

func (g *aliasGraph) addNode(name string) {
	if _, ok := g.edges[name]; !ok {
		g.edges[name] = []string{}
		g.nodes = append(g.nodes, name)
	}
}

// addEdge records that from aliases to.
func (g *aliasGraph) addEdge(from, to string) {
	g.addNode(from)
	g.addNode(to)
	for _, existing := range g.edges[from] {
		if existing == to {
			return
		}
	}
	g.edges[from] = append(g.edges[from], to)
}

// cycles returns the strongly connected components that form alias cycles:
// components with more than one member, or a single member aliasing itself.
// Each component maps its members to the component's index.
func (g *aliasGraph) cycles() (sccs [][]string, member map[string]int) {
	member = make(map[string]int)
	for _, scc := range tarjanSCC(g) {
		if len(scc) > 1 || g.hasSelfLoop(scc[0]) {
			for _, name := range scc {
				member[name] = len(sccs)
			}
			sccs = append(sccs, scc)
		}
	}
	return sccs, member
}

func (g *aliasGraph) hasSelfLoop(node string) bool {
	for _, neighbor := range g.edges[node] {
		if neighbor == node {
			return true
		}
	}
	return false
}

// tarjanSCC finds strongly connected components using Tarjan's algorithm.
// Nodes are visited in first-seen order.
func tarjanSCC(g *aliasGraph) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.edges[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		// v is a root: pop its component.
		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, node := range g.nodes {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	return sccs
}

// cyclePath returns a shortest cycle through start that stays inside scc,
// as a path that begins and ends with start: [a, b, a].
func (g *aliasGraph) cyclePath(start string, scc []string) []string {
	inSCC := make(map[string]bool, len(scc))
	for _, node := range scc {
		inSCC[node] = true
	}

	// Breadth-first search from start until an edge leads back to start.
	parent := map[string]string{}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range g.edges[current] {
			if !inSCC[next] {
				continue
			}
			if next == start {
				path := []string{start}
				for node := current; node != start; node = parent[node] {
					path = append(path, node)
				}
				// path holds start then the nodes back towards start; reverse
				// everything after the first element and close the loop.
				for i, j := 1, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return append(path, start)
			}
			if _, seen := parent[next]; !seen {
				parent[next] = current
				queue = append(queue, next)
			}
		}
	}
	return []string{start}
}
