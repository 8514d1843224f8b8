package storage

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pfrederiksen/venue-slots/internal/filter"
	"github.com/pfrederiksen/venue-slots/internal/slot"
)

// DefaultDataDir is where snapshots live unless told otherwise
const DefaultDataDir = "~/.local/share/venue-slots"

// Snapshot is the set of slots seen by one search
type Snapshot struct {
	Filter    string               `json:"filter"`
	UpdatedAt string               `json:"updated_at,omitempty"`
	Slots     map[string]slot.Slot `json:"slots"`
}

// NewSnapshot returns an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{Slots: make(map[string]slot.Slot)}
}

// List returns the snapshot's slots ordered by key
func (s *Snapshot) List() []slot.Slot {
	keys := make([]string, 0, len(s.Slots))
	for k := range s.Slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	slots := make([]slot.Slot, 0, len(keys))
	for _, k := range keys {
		slots = append(slots, s.Slots[k])
	}
	return slots
}

// Storage handles persistence of slot snapshots
type Storage struct {
	dataDir string
	now     func() time.Time
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
		now:     time.Now,
	}, nil
}

// snapshotPath returns the snapshot file for a filter
func (s *Storage) snapshotPath(f filter.Filter) string {
	if f.IsEmpty() {
		return filepath.Join(s.dataDir, "snapshot.json")
	}
	sum := sha1.Sum([]byte(f.Query().Encode()))
	return filepath.Join(s.dataDir, fmt.Sprintf("snapshot_%s.json", hex.EncodeToString(sum[:6])))
}

// Load loads the snapshot for a filter. A filter never saved yields an empty snapshot.
func (s *Storage) Load(f filter.Filter) (*Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath(f))
	if err != nil {
		if os.IsNotExist(err) {
			// No previous snapshot, return empty one
			return NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	// Ensure Slots map is initialized
	if snapshot.Slots == nil {
		snapshot.Slots = make(map[string]slot.Slot)
	}
	return &snapshot, nil
}

// Save replaces the snapshot for a filter with slots
func (s *Storage) Save(f filter.Filter, slots []slot.Slot) error {
	snapshot := &Snapshot{
		Filter:    f.String(),
		UpdatedAt: s.now().UTC().Format(time.RFC3339),
		Slots:     make(map[string]slot.Slot, len(slots)),
	}
	for _, sl := range slots {
		snapshot.Slots[sl.Key()] = sl
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(s.snapshotPath(f), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
