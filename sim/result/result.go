// Package result shapes a finished Simulator run into the JSON document
// written to --output-file.
package result

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fabric-sim/fabric-sim/sim/eventqueue"
	"github.com/fabric-sim/fabric-sim/sim/program"
	"github.com/fabric-sim/fabric-sim/sim/simulator"
)

// ScheduleView mirrors program.Schedule for JSON output.
type ScheduleView struct {
	Dx   int32 `json:"dx"`
	Dy   int32 `json:"dy"`
	Dz   int32 `json:"dz"`
	Rot  int32 `json:"rot"`
	Flip bool  `json:"flip"`
}

// ProgramView mirrors the placed program.Program's cuboid or polycube
// geometry for JSON output; omitted entirely when NoOutputProgram is set.
type ProgramView struct {
	Kind    string       `json:"kind"`
	Blocks  [][3]int32   `json:"blocks,omitempty"`
	Cuboids []CuboidView `json:"cuboids,omitempty"`
}

// CuboidView mirrors one geometry.Cuboid for JSON output.
type CuboidView struct {
	X  int32 `json:"x"`
	Y  int32 `json:"y"`
	Z  int32 `json:"z"`
	SX int32 `json:"sx"`
	SY int32 `json:"sy"`
	SZ int32 `json:"sz"`
}

// IssuedJobView mirrors simulator.IssuedJob for JSON output.
type IssuedJobView struct {
	JobID          uint32       `json:"job_id"`
	Program        *ProgramView `json:"program,omitempty"`
	Schedule       ScheduleView `json:"schedule"`
	RequestedTime  uint64       `json:"requested_time"`
	WaitingTime    uint64       `json:"waiting_time"`
	TurnaroundTime uint64       `json:"turnaround_time"`
}

// EventView mirrors eventqueue.Event for JSON output.
type EventView struct {
	Time  uint64 `json:"time"`
	Kind  string `json:"kind"`
	JobID uint32 `json:"job_id,omitempty"`
}

// Result is the top-level JSON document written to --output-file.
type Result struct {
	Jobs       []IssuedJobView `json:"jobs"`
	TotalCycle uint64          `json:"total_cycle"`
	EventLog   []EventView     `json:"event_log"`
}

// FromSimulator projects a finished Simulator's state into a Result.
func FromSimulator(s *simulator.Simulator) Result {
	jobs := make([]IssuedJobView, len(s.Jobs()))
	for i, j := range s.Jobs() {
		view := IssuedJobView{
			JobID:          uint32(j.JobID),
			Schedule:       scheduleView(j.Schedule),
			RequestedTime:  j.RequestedTime,
			WaitingTime:    j.WaitingTime,
			TurnaroundTime: j.TurnaroundTime,
		}
		if j.Program != nil {
			pv := programView(*j.Program)
			view.Program = &pv
		}
		jobs[i] = view
	}

	events := make([]EventView, len(s.EventLog()))
	for i, e := range s.EventLog() {
		events[i] = EventView{Time: e.Time, Kind: e.Kind.String()}
		if e.Kind == eventqueue.KindRequestJob {
			events[i].JobID = uint32(e.JobID)
		}
	}

	return Result{
		Jobs:       jobs,
		TotalCycle: s.SimulationTime(),
		EventLog:   events,
	}
}

func scheduleView(sc program.Schedule) ScheduleView {
	return ScheduleView{Dx: sc.Dx, Dy: sc.Dy, Dz: sc.Dz, Rot: sc.Rot, Flip: sc.Flip}
}

func programView(p program.Program) ProgramView {
	if poly, ok := p.Polycube(); ok {
		blocks := make([][3]int32, len(poly.Blocks()))
		for i, b := range poly.Blocks() {
			blocks[i] = [3]int32{b.X, b.Y, b.Z}
		}
		return ProgramView{Kind: "polycube", Blocks: blocks}
	}
	cuboids, _ := p.Cuboids()
	views := make([]CuboidView, len(cuboids))
	for i, c := range cuboids {
		views[i] = CuboidView{X: c.X1(), Y: c.Y1(), Z: c.Z1(), SX: c.SizeX, SY: c.SizeY, SZ: c.SizeZ}
	}
	return ProgramView{Kind: "cuboid", Cuboids: views}
}

// Write marshals r as indented JSON and writes it to path.
func Write(path string, r Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing result to %q: %w", path, err)
	}
	return nil
}
