package generator

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	// ManifestFileName is where the run manifest lands relative to the
	// output directory.
	ManifestFileName    = ".promptscript-manifest.json"
	manifestFileVersion = 1
)

// RunManifest records the artifacts of one generation run so later runs can
// detect stale or externally modified outputs.
type RunManifest struct {
	Version     int                `json:"version"`
	RunID       uuid.UUID          `json:"run_id"`
	Target      Target             `json:"target"`
	GeneratedAt time.Time          `json:"generated_at"`
	Artifacts   []ManifestArtifact `json:"artifacts"`
}

// ManifestArtifact is one manifest entry.
type ManifestArtifact struct {
	ID       uuid.UUID `json:"id"`
	Path     string    `json:"path"`
	Checksum string    `json:"checksum"`
	Size     int64     `json:"size"`
}

func newRunManifest(runID uuid.UUID, target Target, generatedAt time.Time, artifacts []Artifact) *RunManifest {
	manifest := &RunManifest{
		Version:     manifestFileVersion,
		RunID:       runID,
		Target:      target,
		GeneratedAt: generatedAt,
	}
	for _, artifact := range artifacts {
		manifest.Artifacts = append(manifest.Artifacts, ManifestArtifact{
			ID:       artifact.ID,
			Path:     artifact.Path,
			Checksum: artifact.Checksum,
			Size:     int64(len(artifact.Content)),
		})
	}
	// Stable ordering for deterministic output.
	sort.Slice(manifest.Artifacts, func(i, j int) bool {
		return manifest.Artifacts[i].Path < manifest.Artifacts[j].Path
	})
	return manifest
}

// ParseManifest decodes a previously written manifest. Empty input yields an
// empty manifest rather than an error.
func ParseManifest(data []byte) (*RunManifest, error) {
	if len(data) == 0 {
		return &RunManifest{Version: manifestFileVersion}, nil
	}
	var manifest RunManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}
	if manifest.Version == 0 {
		manifest.Version = manifestFileVersion
	}
	return &manifest, nil
}

// Marshal renders the manifest as indented JSON.
func (m *RunManifest) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	cloned := *m
	if cloned.Version == 0 {
		cloned.Version = manifestFileVersion
	}
	sort.Slice(cloned.Artifacts, func(i, j int) bool {
		return cloned.Artifacts[i].Path < cloned.Artifacts[j].Path
	})
	data, err := json.MarshalIndent(cloned, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("generator: marshal manifest: %w", err)
	}
	return data, nil
}

// Entry returns the manifest entry for path and whether it exists.
func (m *RunManifest) Entry(path string) (ManifestArtifact, bool) {
	if m == nil {
		return ManifestArtifact{}, false
	}
	for _, artifact := range m.Artifacts {
		if artifact.Path == path {
			return artifact, true
		}
	}
	return ManifestArtifact{}, false
}
