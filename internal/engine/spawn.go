package engine

// DefaultFourProb is the chance that a spawned tile is a 4 instead of a 2.
const DefaultFourProb = 0.10

// Rand is the random source used for spawning.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Spawner places new tiles using an injected random source.
type Spawner struct {
	Rand     Rand
	FourProb float64 // Probability of a 4 (0.0-1.0)
}

// NewSpawner creates a spawner with the default 4-tile probability.
func NewSpawner(rng Rand) Spawner {
	return Spawner{Rand: rng, FourProb: DefaultFourProb}
}

// Spawn fills up to count distinct empty cells, chosen uniformly at random,
// with a 2 or a 4. If the board has fewer empty cells than count, every empty
// cell is filled; a full board is returned unchanged.
// The input board is not modified.
func (s Spawner) Spawn(b Board, count int) Board {
	empty := EmptyCells(b)
	if len(empty) == 0 || count <= 0 {
		return b
	}
	count = min(count, len(empty))

	result := b.Clone()
	// Partial Fisher-Yates: the first count entries become the chosen cells.
	for i := range count {
		j := i + s.Rand.Intn(len(empty)-i)
		empty[i], empty[j] = empty[j], empty[i]

		value := 2
		if s.Rand.Float64() < s.FourProb {
			value = 4
		}
		result[empty[i].Row][empty[i].Col] = value
	}
	return result
}

// SpawnTiles spawns count tiles with the default 90/10 split between 2 and 4.
func SpawnTiles(b Board, count int, rng Rand) Board {
	return NewSpawner(rng).Spawn(b, count)
}
