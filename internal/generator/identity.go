package generator

import (
	"github.com/google/uuid"

	"github.com/mrwogu/promptscript/internal/identity"
)

func runUUID(project, key string) uuid.UUID {
	return identity.RunUUID(project, key)
}

func artifactIdentity(runID uuid.UUID, path string) uuid.UUID {
	return identity.ArtifactUUID(runID, path)
}
