package condition

// Effective returns base adjusted by every active modifier on stat: all buffs
// in application order, then all debuffs in application order.
func Effective(s *ActiveSet, stat string, base float64) float64 {
	val := base
	for _, kind := range []Kind{Buff, Debuff} {
		for _, e := range s.entries {
			if e.Kind == kind && e.Stat == stat {
				val = e.Apply(val)
			}
		}
	}
	return val
}

// Sources returns the sources of active modifiers of kind, in application order.
func Sources(s *ActiveSet, kind Kind) []string {
	var out []string
	for _, e := range s.entries {
		if e.Kind == kind {
			out = append(out, e.Source)
		}
	}
	return out
}
