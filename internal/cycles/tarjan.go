// Package cycles detects strongly connected components with Tarjan's
// algorithm. The routine is generic over the node id type and an adjacency
// lookup so it serves both the module dependency graph and the
// entity-relation graph of a data schema.
package cycles

import "cmp"

// frame is one suspended DFS call. next tracks how far through the
// successor list the call has progressed, which replaces the return
// address of the recursive formulation.
type frame[N cmp.Ordered] struct {
	node N
	next int
}

// FindSCCs returns the strongly connected components of the graph given by
// nodes and successors. Every node appears in exactly one component.
// Components come back in reverse topological order of the condensation
// graph, which is Tarjan's natural emission order; the planner relies on
// that ordering.
//
// The traversal uses an explicit work stack instead of recursion so that
// dependency graphs from large codebases cannot blow the native stack.
func FindSCCs[N cmp.Ordered](nodes []N, successors func(N) []N) [][]N {
	index := 0
	indexOf := make(map[N]int, len(nodes))
	lowlink := make(map[N]int, len(nodes))
	onStack := make(map[N]bool, len(nodes))
	stack := make([]N, 0, len(nodes))
	var sccs [][]N

	var work []frame[N]

	for _, root := range nodes {
		if _, seen := indexOf[root]; seen {
			continue
		}

		work = append(work[:0], frame[N]{node: root})
		indexOf[root] = index
		lowlink[root] = index
		index++
		stack = append(stack, root)
		onStack[root] = true

		for len(work) > 0 {
			f := &work[len(work)-1]
			v := f.node
			succ := successors(v)

			advanced := false
			for f.next < len(succ) {
				w := succ[f.next]
				f.next++

				if _, seen := indexOf[w]; !seen {
					indexOf[w] = index
					lowlink[w] = index
					index++
					stack = append(stack, w)
					onStack[w] = true
					work = append(work, frame[N]{node: w})
					advanced = true
					break
				}
				if onStack[w] && indexOf[w] < lowlink[v] {
					lowlink[v] = indexOf[w]
				}
			}
			if advanced {
				continue
			}

			// v is fully explored; pop it and propagate its lowlink.
			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1].node
				if lowlink[v] < lowlink[parent] {
					lowlink[parent] = lowlink[v]
				}
			}

			if lowlink[v] != indexOf[v] {
				continue
			}

			// v is the root of a component.
			var scc []N
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sortNodes(scc)
			sccs = append(sccs, scc)
		}
	}

	return sccs
}

func sortNodes[N cmp.Ordered](s []N) {
	// Insertion sort; components are nearly always tiny.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
