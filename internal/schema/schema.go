// Package schema groups data entities into clusters by their mutual
// reference structure. Entities that reference each other, directly or
// through a chain, must migrate together; the clusters are the strongly
// connected components of the reference graph.
package schema

import (
	"sort"

	"depscope/internal/cycles"
)

// EntityRelation is a directed reference between two entities, for
// example a foreign key or an embedded type.
type EntityRelation struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind,omitempty"`
}

// RelationCluster is a group of entities that must be handled as a unit.
type RelationCluster struct {
	Entities []string `json:"entities"`
	// Cyclic marks clusters whose members reference each other both
	// ways; these cannot be split by any migration ordering.
	Cyclic bool `json:"cyclic"`
}

// ClusterEntities partitions entities into relation clusters. The result
// is ordered so that a cluster never references an earlier cluster,
// which is the order migrations can safely run in.
func ClusterEntities(relations []*EntityRelation) []*RelationCluster {
	successors := make(map[string][]string)
	selfRef := make(map[string]bool)
	seen := make(map[string]bool)
	var entities []string

	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		entities = append(entities, id)
	}
	for _, rel := range relations {
		add(rel.From)
		add(rel.To)
		if rel.From == rel.To {
			selfRef[rel.From] = true
			continue
		}
		successors[rel.From] = append(successors[rel.From], rel.To)
	}
	sort.Strings(entities)
	for id := range successors {
		sort.Strings(successors[id])
	}

	sccs := cycles.FindSCCs(entities, func(id string) []string {
		return successors[id]
	})

	clusters := make([]*RelationCluster, 0, len(sccs))
	for _, scc := range sccs {
		clusters = append(clusters, &RelationCluster{
			Entities: scc,
			Cyclic:   len(scc) > 1 || selfRef[scc[0]],
		})
	}
	return clusters
}
