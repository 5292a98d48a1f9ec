package format

import "fmt"

// prettyDuration renders a nanosecond count using the distilled spec's
// unit-scaling algorithm: 2 decimals under 10, 1 under 100, 0 under 1000,
// then promote to the next unit (ns, µs, ms, s). Past seconds there is no
// further named unit, so the residual prints as whole seconds regardless of
// magnitude; this boundary is preserved exactly, not relied upon.
func prettyDuration(nanos float64) string {
	t := nanos
	for _, unit := range [...]string{"ns", "µs", "ms", "s"} {
		switch {
		case t < 10.0:
			return fmt.Sprintf("%.2f%s", t, unit)
		case t < 100.0:
			return fmt.Sprintf("%.1f%s", t, unit)
		case t < 1000.0:
			return fmt.Sprintf("%.0f%s", t, unit)
		}
		t /= 1000.0
	}
	return fmt.Sprintf("%.0fs", t*1000.0)
}
