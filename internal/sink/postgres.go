package sink

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/arxos/geoplan/internal/pipeerr"
	"github.com/arxos/geoplan/internal/retry"
)

// pipelineArtifact is the row shape persisted for every stage output. The
// composite unique index on (job_id, artifact_name) is what makes Put
// idempotent: a retried upsert with identical bytes is a no-op write.
type pipelineArtifact struct {
	JobID        string `gorm:"primaryKey;column:job_id"`
	ArtifactName string `gorm:"primaryKey;column:artifact_name"`
	ArtifactType string `gorm:"column:artifact_type"`
	Body         []byte `gorm:"column:body"`
	CreatedAt    time.Time
}

func (pipelineArtifact) TableName() string { return "pipeline_artifacts" }

// PostgresSink persists artifacts to Postgres via gorm, retrying
// SINK_UNAVAILABLE failures with exponential backoff capped at three
// total attempts (spec section 7) so a flaky connection can't turn one
// stage's write into a hot retry loop against the database.
type PostgresSink struct {
	db          *gorm.DB
	retryConfig retry.Config
}

// NewPostgresSink opens a connection to dsn and auto-migrates the
// artifact table.
func NewPostgresSink(dsn string) (*PostgresSink, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, pipeerr.Wrap(pipeerr.SinkUnavailable, "SINK", "opening postgres connection", err)
	}
	if err := db.AutoMigrate(&pipelineArtifact{}); err != nil {
		return nil, pipeerr.Wrap(pipeerr.SinkUnavailable, "SINK", "migrating pipeline_artifacts", err)
	}
	return &PostgresSink{
		db: db,
		retryConfig: retry.Config{
			MaxAttempts:  3,
			InitialDelay: 100 * time.Millisecond,
			MaxDelay:     2 * time.Second,
			Multiplier:   2.0,
			Jitter:       true,
		},
	}, nil
}

// Put upserts one artifact row, retrying with exponential backoff up to
// s.retryConfig.MaxAttempts total attempts.
func (s *PostgresSink) Put(ctx context.Context, jobID, artifactName, artifactType string, body []byte) error {
	row := pipelineArtifact{
		JobID:        jobID,
		ArtifactName: artifactName,
		ArtifactType: artifactType,
		Body:         body,
		CreatedAt:    time.Now(),
	}

	attempts := 0
	err := retry.Do(ctx, s.retryConfig, func(ctx context.Context) error {
		attempts++
		return s.db.WithContext(ctx).Save(&row).Error
	})
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return pipeerr.Wrap(pipeerr.Cancelled, "SINK", "waiting to retry artifact write", err)
	}
	return pipeerr.Wrap(pipeerr.SinkUnavailable, "SINK",
		fmt.Sprintf("persisting artifact %s/%s after %d attempts", jobID, artifactName, attempts), err)
}
