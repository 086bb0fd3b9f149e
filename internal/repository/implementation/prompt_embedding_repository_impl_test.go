package implementation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqlRecorder captures the statements a dry-run session builds so tests
// can assert on generated SQL without a live database.
type sqlRecorder struct {
	sqls []string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{})    {}

func (r *sqlRecorder) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, _ := fc()
	r.sqls = append(r.sqls, sql)
}

func dryRunDB(t *testing.T, rec *sqlRecorder) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=dryrun dbname=dryrun"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	if err != nil {
		t.Fatalf("failed to open dry-run session: %v", err)
	}
	return db
}

func TestFindSimilarVideoIdsOrdersByCosineDistance(t *testing.T) {
	rec := &sqlRecorder{}
	repo := NewPromptEmbeddingRepository(dryRunDB(t, rec))

	_, err := repo.FindSimilarVideoIds(context.Background(), []float32{0.1, 0.2, 0.3}, uuid.New(), 5)
	if err != nil {
		t.Fatalf("FindSimilarVideoIds error: %v", err)
	}
	if len(rec.sqls) == 0 {
		t.Fatal("no SQL captured from the dry-run session")
	}

	sql := rec.sqls[len(rec.sqls)-1]
	if !strings.Contains(sql, "ORDER BY embedding_value <=>") {
		t.Fatalf("generated SQL lacks cosine-distance ordering: %s", sql)
	}
	if !strings.Contains(sql, "JOIN videos ON videos.id = prompt_embeddings.video_id") {
		t.Errorf("generated SQL lacks visibility join: %s", sql)
	}
	if !strings.Contains(sql, "LIMIT") {
		t.Errorf("generated SQL lacks a limit: %s", sql)
	}
}
