package cannon

import "github.com/eahenle/spudsim/internal/dynamo"

// Sample is one solver step point.
type Sample struct {
	T float64 // time [s]
	X float64 // position [m]
	V float64 // velocity [m/s]
}

// Trajectory is a time-ordered sequence of solver samples, starting at
// (0, 0, 0). Sample times follow the solver's accepted steps and are not
// uniformly spaced.
type Trajectory []Sample

func trajectoryFromResult(res *dynamo.Result) Trajectory {
	traj := make(Trajectory, 0, len(res.States))
	for i, s := range res.States {
		traj = append(traj, Sample{T: res.Times[i], X: s[idxPos], V: s[idxVel]})
	}
	return traj
}

func (tr Trajectory) Times() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.T
	}
	return out
}

func (tr Trajectory) Positions() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.X
	}
	return out
}

func (tr Trajectory) Velocities() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.V
	}
	return out
}

// TruncateAtExit drops every sample past the barrel muzzle: the returned
// trajectory keeps only samples with position <= length. The second return
// reports whether an exit point was found; when false the full trajectory is
// returned unchanged and the model may be reporting positions beyond the real
// barrel.
func (tr Trajectory) TruncateAtExit(length float64) (Trajectory, bool) {
	for i, s := range tr {
		if s.X > length {
			return tr[:i], true
		}
	}
	return tr, false
}
