package collide

import "github.com/san-kum/gravsim/internal/body"

// Merge records one realized merge: the original indices of the pair and the
// combined mass of the survivor.
type Merge struct {
	I, J int
	Mass float64
}

// Resolve merges every pair of bodies closer than threshold into a single
// body with summed mass, center-of-mass position and summed momentum.
//
// Pairing is greedy and order-dependent: indices are scanned ascending, each
// unmerged i takes the first unmerged j > i within threshold, and a body
// merges with at most one partner per call. A triple close approach therefore
// resolves as one pair now and defers the third body to a later tick. Output
// order follows the lower constituent index; it carries no physical meaning.
func Resolve(b body.Bodies, threshold float64) (body.Bodies, []Merge) {
	n := b.N()
	if n < 2 {
		return b.Clone(), nil
	}

	merged := make([]bool, n)
	out := body.New(n)
	var merges []Merge

	for i := 0; i < n; i++ {
		if merged[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if merged[j] {
				continue
			}
			if b.Pos[i].Sub(b.Pos[j]).Norm() < threshold {
				total := b.Mass[i] + b.Mass[j]
				com := b.Pos[i].Scale(b.Mass[i]).Add(b.Pos[j].Scale(b.Mass[j])).Scale(1.0 / total)
				out.Append(total, com, b.Mom[i].Add(b.Mom[j]))
				merged[i], merged[j] = true, true
				merges = append(merges, Merge{I: i, J: j, Mass: total})
				break
			}
		}
		if !merged[i] {
			out.Append(b.Mass[i], b.Pos[i], b.Mom[i])
		}
	}

	return out, merges
}
