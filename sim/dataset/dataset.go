// Package dataset loads the JSON program catalog and job request list a
// simulation run schedules, translating the wire representation into
// program.Program values.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fabric-sim/fabric-sim/sim/geometry"
	"github.com/fabric-sim/fabric-sim/sim/program"
)

// blockSpec is a [x,y,z] triple as it appears in a Polycube's "blocks" array.
type blockSpec [3]int32

// cuboidSpec is one cuboid in a Cuboid program's array, pos plus extents.
type cuboidSpec struct {
	Pos struct {
		X int32 `json:"x"`
		Y int32 `json:"y"`
		Z int32 `json:"z"`
	} `json:"pos"`
	SizeX int32 `json:"sx"`
	SizeY int32 `json:"sy"`
	SizeZ int32 `json:"sz"`
}

// ProgramSpec is the tagged JSON union for one dataset program: a Polycube
// carries "blocks", a Cuboid program carries "cuboids".
type ProgramSpec struct {
	Kind    string       `json:"kind"`
	Blocks  []blockSpec  `json:"blocks,omitempty"`
	Cuboids []cuboidSpec `json:"cuboids,omitempty"`
}

// ToProgram converts the wire representation into a program.Program.
func (s ProgramSpec) ToProgram() (program.Program, error) {
	switch s.Kind {
	case "polycube":
		if len(s.Blocks) == 0 {
			return program.Program{}, fmt.Errorf("dataset: polycube program has no blocks")
		}
		blocks := make([]geometry.Coordinate, len(s.Blocks))
		for i, b := range s.Blocks {
			blocks[i] = geometry.NewCoordinate(b[0], b[1], b[2])
		}
		return program.NewPolycubeProgram(geometry.NewPolycube(blocks)), nil
	case "cuboid":
		if len(s.Cuboids) == 0 {
			return program.Program{}, fmt.Errorf("dataset: cuboid program has no cuboids")
		}
		cuboids := make([]geometry.Cuboid, len(s.Cuboids))
		for i, c := range s.Cuboids {
			pos := geometry.NewCoordinate(c.Pos.X, c.Pos.Y, c.Pos.Z)
			cuboids[i] = geometry.NewCuboid(pos, c.SizeX, c.SizeY, c.SizeZ)
		}
		return program.NewCuboidProgram(cuboids), nil
	default:
		return program.Program{}, fmt.Errorf("dataset: unknown program kind %q", s.Kind)
	}
}

// JobRequest is one [request_time, program_index] pair from the dataset's
// job_requests array.
type JobRequest struct {
	RequestedTime uint64
	ProgramIndex  int
}

func (r *JobRequest) UnmarshalJSON(data []byte) error {
	var pair [2]uint64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	r.RequestedTime = pair[0]
	r.ProgramIndex = int(pair[1])
	return nil
}

func (r JobRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint64{r.RequestedTime, uint64(r.ProgramIndex)})
}

// Dataset is the top-level JSON document accepted by --dataset-file.
type Dataset struct {
	Programs    []ProgramSpec `json:"programs"`
	JobRequests []JobRequest  `json:"job_requests"`
}

// Load reads and decodes the dataset JSON at path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %q: %w", path, err)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset %q: %w", path, err)
	}
	for _, r := range ds.JobRequests {
		if r.ProgramIndex < 0 || r.ProgramIndex >= len(ds.Programs) {
			return nil, fmt.Errorf("dataset %q: job request references program index %d out of range [0,%d)",
				path, r.ProgramIndex, len(ds.Programs))
		}
	}
	return &ds, nil
}

// DecodePrograms decodes every ProgramSpec in d, in order, failing on the
// first malformed entry.
func (d *Dataset) DecodePrograms() ([]program.Program, error) {
	out := make([]program.Program, len(d.Programs))
	for i, spec := range d.Programs {
		p, err := spec.ToProgram()
		if err != nil {
			return nil, fmt.Errorf("dataset: program %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}
