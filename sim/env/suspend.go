package env

import "sort"

// SuspendAt registers that execution at pc-point z is blocked until absolute
// time t, merging with any existing entry for z by max. Precondition:
// pc <= z (callers violate this at their own risk; it is not re-checked
// here since the simulator enforces ViolateTimingConstraint earlier).
func (e *Environment) SuspendAt(z, t int64) {
	if existing, ok := e.suspendUntil[z]; ok && existing >= t {
		return
	}
	e.suspendUntil[z] = t
}

// sortedSuspendKeys returns the pending suspension pc-points in ascending order.
func (e *Environment) sortedSuspendKeys() []int64 {
	keys := make([]int64, 0, len(e.suspendUntil))
	for z := range e.suspendUntil {
		keys = append(keys, z)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// AdvanceBy consumes n cycles of advance budget, processing pending
// suspensions in increasing z order. Each suspension fully inside the
// budget window is dropped and the loop continues against the next one;
// a suspension only partially coverable by the remaining budget re-inserts
// itself unchanged and advancement stops. Finally the leftover budget
// advances pc and current_time directly, and running is pruned of anything
// whose max_z_exclusive has fallen to or below the new pc.
func (e *Environment) AdvanceBy(n int64) {
	budget := n
	for budget > 0 {
		keys := e.sortedSuspendKeys()
		if len(keys) == 0 {
			break
		}
		z0 := keys[0]
		if z0 < e.pc || z0 >= e.pc+budget {
			break
		}
		t := e.suspendUntil[z0]
		delete(e.suspendUntil, z0)

		delta := z0 - e.pc
		e.pc = z0
		e.currentTime += delta
		budget -= delta

		need := t - e.currentTime
		if need < 0 {
			need = 0
		}
		if budget >= need {
			e.currentTime += need
			budget -= need
			continue
		}
		e.currentTime += budget
		budget = 0
		e.suspendUntil[z0] = t
		break
	}
	e.pc += budget
	e.currentTime += budget
	e.pruneRunning()
}

// RemainingCycles computes the cycles an unbounded AdvanceBy(infinity) would
// consume without mutating the Environment: the sum of every pending
// suspension's advance-to interval plus its wait, plus the distance from
// the final pc to end_pc, plus the accumulated defragmentation cost.
func (e *Environment) RemainingCycles() int64 {
	pc := e.pc
	currentTime := e.currentTime
	var total int64

	for _, z0 := range e.sortedSuspendKeys() {
		t := e.suspendUntil[z0]
		delta := z0 - pc
		pc = z0
		currentTime += delta
		total += delta

		need := t - currentTime
		if need > 0 {
			currentTime += need
			total += need
		}
	}

	if e.endPC > pc {
		total += e.endPC - pc
	}
	total += e.defragCostSum
	return total
}
