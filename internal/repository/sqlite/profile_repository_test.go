package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/cognitrain/internal/models"
	"github.com/vytor/cognitrain/internal/repository"
	"github.com/vytor/cognitrain/internal/repository/sqlite"
	"github.com/vytor/cognitrain/internal/testutil"
)

type ProfileRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProfileRepository
}

func (s *ProfileRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProfileRepository(s.db)
}

func (s *ProfileRepositorySuite) TestUpsertIsIdempotent() {
	ctx := context.Background()

	first, err := s.repo.Upsert(ctx, "ana")
	s.Require().NoError(err)
	second, err := s.repo.Upsert(ctx, "ana")
	s.Require().NoError(err)

	s.Assert().Equal(first.ID, second.ID)

	profiles, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(profiles, 1)
}

func (s *ProfileRepositorySuite) TestGet() {
	ctx := context.Background()
	p, err := s.repo.Upsert(ctx, "ben")
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, p.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("ben", got.Username)

	missing, err := s.repo.Get(ctx, p.ID+100)
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func (s *ProfileRepositorySuite) TestDeleteCascades() {
	ctx := context.Background()
	p, err := s.repo.Upsert(ctx, "cleo")
	s.Require().NoError(err)

	sessions := sqlite.NewSessionRepository(s.db)
	_, err = sessions.Append(ctx, models.Session{
		ProfileID:     p.ID,
		ScoredSession: models.ScoredSession{Metrics: testutil.Metrics("sequence", 1, 5, 5, time.Now())},
	})
	s.Require().NoError(err)

	summaries := sqlite.NewSummaryRepository(s.db)
	s.Require().NoError(summaries.Upsert(ctx, models.ProgressSummary{ProfileID: p.ID, GameType: "sequence", CurrentLevel: 1}))

	s.Require().NoError(s.repo.Delete(ctx, p.ID))

	var count int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count))
	s.Assert().Zero(count)
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM progress_summaries`).Scan(&count))
	s.Assert().Zero(count)

	got, err := s.repo.Get(ctx, p.ID)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func TestProfileRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositorySuite))
}
