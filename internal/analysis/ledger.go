package analysis

// The investigation ledger is an append-only event log with
// supersession pointers. Earlier entries are never deleted or mutated;
// the "current belief" views below are derived by folding the
// sequence.

// CurrentBeliefs folds the ledger into the findings still standing. A
// REFUTED step retires its own finding and any earlier finding named
// in its evidence links; the REFUTED step itself is not a belief.
// Surviving steps keep first-appearance order, with the latest step
// per finding winning.
func CurrentBeliefs(steps []InvestigationStep) []InvestigationStep {
	type slot struct {
		order int
		step  InvestigationStep
	}
	byFinding := make(map[string]*slot)
	order := 0
	for _, s := range steps {
		if s.Status == StatusRefuted {
			delete(byFinding, s.Finding)
			for _, ref := range s.EvidenceLinks {
				delete(byFinding, ref)
			}
			continue
		}
		if sl, ok := byFinding[s.Finding]; ok {
			sl.step = s
			continue
		}
		byFinding[s.Finding] = &slot{order: order, step: s}
		order++
	}
	out := make([]InvestigationStep, 0, len(byFinding))
	for i := 0; i < order; i++ {
		for _, sl := range byFinding {
			if sl.order == i {
				out = append(out, sl.step)
				break
			}
		}
	}
	return out
}

// CurrentHypotheses filters out every hypothesis superseded by a later
// correction. The input sequence is left untouched.
func CurrentHypotheses(hyps []Hypothesis) []Hypothesis {
	superseded := make(map[string]bool)
	for _, h := range hyps {
		if h.CorrectedFrom != "" {
			superseded[h.CorrectedFrom] = true
		}
	}
	out := make([]Hypothesis, 0, len(hyps))
	for _, h := range hyps {
		if !superseded[h.Statement] {
			out = append(out, h)
		}
	}
	return out
}
