package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

// SnapshotKey is the single key the saved CV lives under.
const SnapshotKey = "saved-cv"

// ErrNoSavedCV is returned by Restore when there is no usable snapshot.
var ErrNoSavedCV = errors.New("no saved CV found")

// Messages shown to the user after a save or a restore.
const (
	NoticeSaved      = "CV saved successfully!"
	NoticeLoaded     = "CV loaded successfully!"
	NoticeNoSavedCV  = "No saved CV found."
	NoticeSaveFailed = "Failed to save CV. Please try again."
	NoticeLoadFailed = "Failed to load CV. Please try again."
)

// Snapshot is the persisted (document, customization) pair.
type Snapshot struct {
	CVData        types.CVData               `json:"cvData"`
	Customization types.CustomizationOptions `json:"customization"`
	SavedAt       time.Time                  `json:"savedAt"`
}

// SerializationError reports a snapshot that could not be encoded or decoded.
type SerializationError struct {
	Key   string
	Cause error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("snapshot %q is unreadable: %v", e.Key, e.Cause)
}

func (e *SerializationError) Unwrap() error {
	return e.Cause
}

// Snapshots saves and restores the CV snapshot.
type Snapshots struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewSnapshots creates a snapshot repository over store.
func NewSnapshots(store Store, log zerolog.Logger) *Snapshots {
	return &Snapshots{store: store, log: log, now: time.Now}
}

// Persist writes the current document and options, replacing any earlier snapshot.
func (s *Snapshots) Persist(ctx context.Context, data types.CVData, opts types.CustomizationOptions) (Snapshot, error) {
	snap := Snapshot{
		CVData:        data.Normalize(),
		Customization: opts,
		SavedAt:       s.now().UTC(),
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, &SerializationError{Key: SnapshotKey, Cause: err}
	}
	if err := s.store.Set(ctx, SnapshotKey, raw); err != nil {
		s.log.Error().Err(err).Str("key", SnapshotKey).Msg("failed to persist snapshot")
		return Snapshot{}, err
	}
	s.log.Info().Str("key", SnapshotKey).Time("saved_at", snap.SavedAt).Msg("snapshot saved")
	return snap, nil
}

// Restore reads the snapshot. A missing, malformed or schema-invalid snapshot
// is reported as ErrNoSavedCV; corrupt content also wraps a SerializationError.
// Store failures are returned as they are.
func (s *Snapshots) Restore(ctx context.Context) (Snapshot, error) {
	raw, err := s.store.Get(ctx, SnapshotKey)
	if errors.Is(err, ErrNotFound) {
		return Snapshot{}, ErrNoSavedCV
	}
	if err != nil {
		s.log.Error().Err(err).Str("key", SnapshotKey).Msg("failed to read snapshot")
		return Snapshot{}, err
	}

	snap, err := decodeSnapshot(raw)
	if err != nil {
		serr := &SerializationError{Key: SnapshotKey, Cause: err}
		s.log.Warn().Err(serr).Msg("ignoring unreadable snapshot")
		return Snapshot{}, fmt.Errorf("%w: %w", ErrNoSavedCV, serr)
	}
	return snap, nil
}

// Clear removes the snapshot.
func (s *Snapshots) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, SnapshotKey)
}

func decodeSnapshot(raw []byte) (Snapshot, error) {
	if err := schemas.ValidateSnapshot(raw); err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, err
	}
	snap.CVData = snap.CVData.Normalize()
	return snap, nil
}
