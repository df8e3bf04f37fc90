package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("ann", 128, 32); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	// Migration must be idempotent
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 128 {
		t.Errorf("HighScore() = %d, want 128", high)
	}
}

func TestStoreSchemaVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	for range 2 {
		store, err := Open(dbPath)
		if err != nil {
			t.Fatalf("Open() failed: %v", err)
		}
		v, err := store.SchemaVersion()
		store.Close()
		if err != nil {
			t.Fatalf("SchemaVersion() failed: %v", err)
		}
		if v != len(migrations) {
			t.Errorf("SchemaVersion() = %d, want %d", v, len(migrations))
		}
	}
}

func TestStoreRejectsNewerSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", len(migrations)+1)); err != nil {
		t.Fatalf("bump user_version: %v", err)
	}
	store.Close()

	if _, err := Open(dbPath); err == nil {
		t.Error("Open() should refuse a database from a newer build")
	}
}

func TestDSN(t *testing.T) {
	got := dsn("/tmp/t.db")
	want := "file:/tmp/t.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate"
	if got != want {
		t.Errorf("dsn() = %q, want %q", got, want)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/.t2048/t2048.db")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if want := filepath.Join(home, ".t2048", "t2048.db"); got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}

	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandPath(absolute) = %q, want unchanged", got)
	}
}

func TestStoreTopScoresOrder(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("ann", 100, 16)
	store.SaveScore("bob", 300, 64)
	store.SaveScore("cat", 100, 32)
	store.SaveScore("dan", 200, 32)

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	var names []string
	for _, s := range scores {
		names = append(names, s.Name)
	}
	// Equal scores keep insertion order
	want := []string{"bob", "dan", "ann", "cat"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("TopScores() order mismatch (-want +got):\n%s", diff)
	}
	if scores[0].MaxTile != 64 {
		t.Errorf("MaxTile = %d, want 64", scores[0].MaxTile)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("p", (i+1)*100, 8)
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.TopScores(0)
	if err != nil {
		t.Fatalf("TopScores(0) failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("TopScores(0) returned %d scores, want 5", len(all))
	}
}

func TestStoreEmptyNameIsAnonymous(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("   ", 40, 8)
	scores, _ := store.TopScores(1)
	if len(scores) != 1 || scores[0].Name != AnonymousName {
		t.Errorf("TopScores() = %v, want one %q entry", scores, AnonymousName)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty leaderboard, got %d", high)
	}

	store.SaveScore("a", 100, 8)
	store.SaveScore("b", 300, 8)
	store.SaveScore("c", 200, 8)

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStorePruneAndQualify(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{50, 10, 40, 20, 30} {
		store.SaveScore("p", score, 8)
	}

	ok, err := store.Qualifies(25, 3)
	if err != nil {
		t.Fatalf("Qualifies() failed: %v", err)
	}
	if ok {
		t.Error("Qualifies(25, 3) = true, want false")
	}
	if ok, _ := store.Qualifies(45, 3); !ok {
		t.Error("Qualifies(45, 3) = false, want true")
	}
	if ok, _ := store.Qualifies(0, 10); ok {
		t.Error("Qualifies(0, 10) = true, want false")
	}

	if err := store.PruneScores(3); err != nil {
		t.Fatalf("PruneScores() failed: %v", err)
	}
	scores, _ := store.TopScores(0)
	if len(scores) != 3 {
		t.Fatalf("after prune got %d scores, want 3", len(scores))
	}
	if scores[2].Score != 30 {
		t.Errorf("lowest kept score = %d, want 30", scores[2].Score)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("a", 100, 8)
	store.SaveScore("b", 200, 8)

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty Stats() = %+v", stats)
	}

	store.SaveScore("a", 100, 16)
	store.SaveScore("b", 300, 128)

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.BestTile != 128 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
}

func TestStoreSavedGameRoundTrip(t *testing.T) {
	store := openTestStore(t)

	missing, err := store.LoadGame("local")
	if err != nil {
		t.Fatalf("LoadGame() on empty slot failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("LoadGame() on empty slot = %+v, want nil", missing)
	}

	snap := game.Snapshot{
		Board: engine.Board{{2, 0, 0, 0}, {0, 4, 0, 0}, {0, 0, 8, 0}, {0, 0, 0, 16}},
		Score: 36,
		State: game.StatePlaying,
		Moves: 7,
	}
	undo := &game.Snapshot{
		Board: engine.Board{{2, 0, 0, 0}, {0, 4, 0, 0}, {0, 0, 8, 0}, {0, 0, 8, 8}},
		Score: 20,
		State: game.StatePlaying,
		Moves: 6,
	}

	if err := store.SaveGame("local", snap, undo); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	saved, err := store.LoadGame("local")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if diff := cmp.Diff(snap, saved.Snapshot); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(undo, saved.Undo); diff != "" {
		t.Errorf("undo mismatch (-want +got):\n%s", diff)
	}

	// Overwrite without undo
	snap.Moves = 8
	if err := store.SaveGame("local", snap, nil); err != nil {
		t.Fatalf("SaveGame() overwrite failed: %v", err)
	}
	saved, _ = store.LoadGame("local")
	if saved.Undo != nil {
		t.Errorf("Undo = %+v, want nil after overwrite", saved.Undo)
	}
	if saved.Snapshot.Moves != 8 {
		t.Errorf("Moves = %d, want 8", saved.Snapshot.Moves)
	}

	if err := store.DeleteGame("local"); err != nil {
		t.Fatalf("DeleteGame() failed: %v", err)
	}
	if saved, _ := store.LoadGame("local"); saved != nil {
		t.Errorf("LoadGame() after delete = %+v, want nil", saved)
	}
	if err := store.DeleteGame("local"); err != nil {
		t.Errorf("DeleteGame() on empty slot failed: %v", err)
	}
}

func TestStoreSlotsAreIndependent(t *testing.T) {
	store := openTestStore(t)

	a := game.Snapshot{Board: engine.Board{{2, 0}, {0, 0}}, State: game.StatePlaying}
	b := game.Snapshot{Board: engine.Board{{0, 0}, {0, 4}}, Score: 4, State: game.StateGameOver}

	store.SaveGame("alice", a, nil)
	store.SaveGame("bob", b, nil)

	got, _ := store.LoadGame("alice")
	if diff := cmp.Diff(a, got.Snapshot); diff != "" {
		t.Errorf("alice mismatch (-want +got):\n%s", diff)
	}
	got, _ = store.LoadGame("bob")
	if got.Snapshot.State != game.StateGameOver {
		t.Errorf("bob state = %q, want %q", got.Snapshot.State, game.StateGameOver)
	}
}
