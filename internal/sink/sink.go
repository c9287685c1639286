// Package sink defines where pipeline artifacts land after each stage:
// the canvas artifact, the candidate pairs, the per-stage rectangle lists.
// The run report is not persisted here.
// ArtifactSink is deliberately narrow so a dry-run CLI invocation can swap
// in MemorySink without touching the executor.
package sink

import (
	"context"
	"sync"
)

// ArtifactSink persists one artifact body under a (job, name) key. Put is
// idempotent: persisting the same (jobID, artifactName) twice with
// identical bytes must not be treated as an error, since a retried stage
// re-emits the same artifact.
type ArtifactSink interface {
	Put(ctx context.Context, jobID, artifactName, artifactType string, body []byte) error
}

// MemorySink keeps every artifact in process memory, for tests and
// dry-run CLI invocations that never talk to a database.
type MemorySink struct {
	mu        sync.Mutex
	artifacts map[string][]byte
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{artifacts: make(map[string][]byte)}
}

func (s *MemorySink) Put(_ context.Context, jobID, artifactName, _ string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[jobID+"/"+artifactName] = append([]byte(nil), body...)
	return nil
}

// Get returns a previously put artifact's body, for test assertions.
func (s *MemorySink) Get(jobID, artifactName string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.artifacts[jobID+"/"+artifactName]
	return body, ok
}
