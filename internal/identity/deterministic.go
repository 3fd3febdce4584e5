package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// RunUUID identifies a generation run by project name and content checksum,
// so identical inputs replay to the same run identifier.
func RunUUID(project, checksum string) uuid.UUID {
	return UUID("promptscript:run:" + strings.TrimSpace(project) + ":" + strings.TrimSpace(checksum))
}

// ArtifactUUID identifies a generated artifact within a run.
func ArtifactUUID(runID uuid.UUID, path string) uuid.UUID {
	return UUID("promptscript:artifact:" + runID.String() + ":" + strings.TrimSpace(path))
}

// ConventionUUID identifies a registered rendering convention by name.
func ConventionUUID(name string) uuid.UUID {
	return UUID("promptscript:convention:" + strings.ToLower(strings.TrimSpace(name)))
}
