// Package coupling computes Martin-style coupling metrics per module from
// the dependency graph: afferent coupling (in-degree), efferent coupling
// (out-degree), and instability.
package coupling

// Metrics holds the coupling numbers for a single module.
//
// Instability is Ce / (Ca + Ce). A module with no connections at all is
// defined as maximally stable (0.0), not undefined.
type Metrics struct {
	Afferent    int     `json:"afferent"`
	Efferent    int     `json:"efferent"`
	Instability float64 `json:"instability"`

	// RiskScore blends instability with normalized afferent coupling and
	// is used for hotspot ranking and output ordering.
	RiskScore float64 `json:"riskScore"`
}

// Instability computes Ce / (Ca + Ce), returning 0.0 when the module has
// no couplings.
func Instability(afferent, efferent int) float64 {
	total := afferent + efferent
	if total == 0 {
		return 0.0
	}
	return float64(efferent) / float64(total)
}
