package engine

import (
	"math/rand"
	"testing"
)

// scriptedRand replays fixed values so spawn outcomes can be asserted exactly.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func countTiles(b Board) int {
	n := 0
	for _, row := range b {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

func TestSpawnTilesClampsToEmptyCells(t *testing.T) {
	board := Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 0, 4096},
		{8192, 16384, 32768, 65536},
	}

	result := SpawnTiles(board, 2, rand.New(rand.NewSource(1)))

	if v := result[2][2]; v != 2 && v != 4 {
		t.Errorf("empty cell got %d, want 2 or 4", v)
	}
	if countTiles(result) != 16 {
		t.Errorf("tile count = %d, want 16", countTiles(result))
	}
	if board[2][2] != 0 {
		t.Error("SpawnTiles should not modify its input")
	}
}

func TestSpawnTilesFullBoard(t *testing.T) {
	board := Board{
		{2, 4},
		{4, 2},
	}

	result := SpawnTiles(board, 3, rand.New(rand.NewSource(1)))
	if !result.Equal(board) {
		t.Errorf("full board should be returned unchanged, got\n%s", result)
	}
}

func TestSpawnTilesDistinctCells(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 200 {
		result := SpawnTiles(NewBoard(4), 3, rng)
		if got := countTiles(result); got != 3 {
			t.Fatalf("spawned %d tiles, want 3 distinct cells:\n%s", got, result)
		}
	}
}

func TestSpawnerScripted(t *testing.T) {
	// Empty cells in row-major order are (0,0) (0,1) (1,0) (1,1).
	// First pick: index 0+3 -> (1,1); swap makes the list (1,1) (0,1) (1,0) (0,0).
	// Second pick: index 1+0 -> (0,1).
	rng := &scriptedRand{
		ints:   []int{3, 0},
		floats: []float64{0.95, 0.05},
	}

	result := NewSpawner(rng).Spawn(NewBoard(2), 2)
	expected := Board{
		{0, 4},
		{0, 2},
	}
	if !result.Equal(expected) {
		t.Errorf("Spawn() =\n%s\nwant\n%s", result, expected)
	}
}

func TestSpawnerFourProbability(t *testing.T) {
	always := Spawner{Rand: rand.New(rand.NewSource(3)), FourProb: 1.0}
	never := Spawner{Rand: rand.New(rand.NewSource(3)), FourProb: 0.0}

	for _, row := range always.Spawn(NewBoard(4), 16) {
		for _, v := range row {
			if v != 4 {
				t.Fatalf("FourProb=1 spawned %d", v)
			}
		}
	}
	for _, row := range never.Spawn(NewBoard(4), 16) {
		for _, v := range row {
			if v != 2 {
				t.Fatalf("FourProb=0 spawned %d", v)
			}
		}
	}
}

func TestSpawnTilesDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	fours := 0
	const trials = 10000

	for range trials {
		b := SpawnTiles(NewBoard(4), 1, rng)
		if MaxTile(b) == 4 {
			fours++
		}
	}

	ratio := float64(fours) / trials
	if ratio < 0.07 || ratio > 0.13 {
		t.Errorf("4-tile ratio = %.3f, want about 0.10", ratio)
	}
}

func TestDeterministicSpawn(t *testing.T) {
	b1 := SpawnTiles(NewBoard(4), 2, rand.New(rand.NewSource(99)))
	b2 := SpawnTiles(NewBoard(4), 2, rand.New(rand.NewSource(99)))

	if !b1.Equal(b2) {
		t.Errorf("same seed should produce the same board:\n%s\nvs\n%s", b1, b2)
	}
}

func TestSpawnZeroCount(t *testing.T) {
	board := NewBoard(3)
	result := SpawnTiles(board, 0, rand.New(rand.NewSource(1)))
	if countTiles(result) != 0 {
		t.Error("count 0 should spawn nothing")
	}
}
