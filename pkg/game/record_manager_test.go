package game

import (
	"os"
	"sync"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// newTestGdataManager 在临时 HOME 下创建 gdata Manager
func newTestGdataManager(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

func TestRecordManagerNilGdata(t *testing.T) {
	rm := NewRecordManager(nil, "", nil)

	rm.RecordEpisode("a", 1.5, 100)
	if err := rm.Save(); err != nil {
		t.Errorf("Save() in degraded mode returned %v", err)
	}
	if err := rm.Load(); err != nil {
		t.Errorf("Load() in degraded mode returned %v", err)
	}
	if rm.Stats().Episodes != 0 {
		t.Errorf("degraded Load should reset stats, got %+v", rm.Stats())
	}
}

func TestRecordEpisode(t *testing.T) {
	rm := NewRecordManager(nil, "", nil)

	episodes := []struct {
		area   string
		reward float64
		steps  int
	}{
		{"a", -2, 10},
		{"b", 3, 20},
		{"a", 1, 30},
	}
	for _, e := range episodes {
		rm.RecordEpisode(e.area, e.reward, e.steps)
	}

	stats := rm.Stats()
	want := EpisodeStats{
		Episodes:    3,
		TotalSteps:  60,
		TotalReward: 2,
		BestReward:  3,
		LastReward:  1,
		LastArea:    "a",
	}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if got := stats.MeanReward(); got != 2.0/3.0 {
		t.Errorf("mean reward = %v, want %v", got, 2.0/3.0)
	}

	rm.Reset()
	if rm.Stats() != (EpisodeStats{}) {
		t.Errorf("stats after reset = %+v", rm.Stats())
	}
	if rm.Stats().MeanReward() != 0 {
		t.Error("mean reward of empty stats should be 0")
	}
}

func TestRecordManagerFirstEpisodeNegativeBest(t *testing.T) {
	rm := NewRecordManager(nil, "", nil)
	rm.RecordEpisode("a", -5, 1)
	if rm.Stats().BestReward != -5 {
		t.Errorf("best reward = %v, want -5", rm.Stats().BestReward)
	}
}

func TestRecordManagerSaveLoad(t *testing.T) {
	manager := newTestGdataManager(t, "test_penguin_records")

	rm := NewRecordManager(manager, "run1", nil)
	rm.RecordEpisode("area-1", 4.5, 250)
	rm.RecordEpisode("area-2", 1.5, 250)
	if err := rm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded := NewRecordManager(manager, "run1", nil)
	if loaded.Stats() != rm.Stats() {
		t.Errorf("loaded stats = %+v, want %+v", loaded.Stats(), rm.Stats())
	}

	other := NewRecordManager(manager, "run2", nil)
	if other.Stats().Episodes != 0 {
		t.Errorf("separate property should start empty, got %+v", other.Stats())
	}
}

func TestRecordManagerConcurrent(t *testing.T) {
	rm := NewRecordManager(nil, "", nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rm.RecordEpisode("a", 1, 2)
		}()
	}
	wg.Wait()

	stats := rm.Stats()
	if stats.Episodes != 50 || stats.TotalSteps != 100 {
		t.Errorf("stats = %+v, want 50 episodes and 100 steps", stats)
	}
}
