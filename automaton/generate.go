package automaton

// identityState is the single state of a generated transducer.
const identityState = "t0"

// IdentityTransducer builds a one-state transducer that is both initial and
// final and translates every label to itself at the given cost.
// It stands in for a provided transducer: with cost 0 the weighted query
// degenerates to a plain regular-path query; with cost 1 the answer cost is
// the path length.
func IdentityTransducer(labels []string, cost float64) (*Automaton, error) {
	t := NewTransducer()
	if err := t.AddState(identityState); err != nil {
		return nil, err
	}
	for _, l := range labels {
		if err := t.AddTranslation(identityState, identityState, l, "", cost); err != nil {
			return nil, err
		}
	}
	if err := t.SetInitial(identityState); err != nil {
		return nil, err
	}
	if err := t.SetFinal(identityState); err != nil {
		return nil, err
	}

	return t, nil
}
