package env

import "fmt"

// Validate is a defensive postcondition: it panics if any issued program
// overlaps another, lies out of range, or if pc/current_time have drifted
// out of their required relationship. A violation here indicates a bug in
// the simulator or a scheduler, never a user-correctable error.
func (e *Environment) Validate() {
	if e.pc < 0 || e.pc > e.currentTime {
		panic(fmt.Sprintf("env: invariant violated: pc=%d current_time=%d", e.pc, e.currentTime))
	}
	for i, p := range e.issued {
		minX, maxXExcl, minY, maxYExcl, minZ, _ := p.Bounds()
		if minX < 0 || int64(maxXExcl) > e.config.SizeX || minY < 0 || int64(maxYExcl) > e.config.SizeY || minZ < 0 {
			panic(fmt.Sprintf("env: issued program %d out of range: bounds=(%d,%d,%d,%d,%d)", i, minX, maxXExcl, minY, maxYExcl, minZ))
		}
		for j := i + 1; j < len(e.issued); j++ {
			if p.Overlaps(e.issued[j]) {
				panic(fmt.Sprintf("env: issued programs %d and %d overlap", i, j))
			}
		}
	}
}
