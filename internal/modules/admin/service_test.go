package admin

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/kyomei/core/internal/database"
	"github.com/kyomei/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestGetStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	op := models.UserModel{Username: "operator", Password: "x", IsAdmin: true}
	require.NoError(t, db.Create(&op).Error)

	open := models.TopicModel{Number: 1, Title: "開催中", Subject: "日常", Status: models.TopicActive, EndTime: time.Now().Add(time.Hour), AuthorID: op.ID}
	require.NoError(t, db.Create(&open).Error)
	expired := models.TopicModel{Number: 2, Title: "期限切れ", Subject: "日常", Status: models.TopicActive, EndTime: time.Now().Add(-time.Hour), AuthorID: op.ID}
	require.NoError(t, db.Create(&expired).Error)
	closed := models.TopicModel{Number: 3, Title: "終了", Subject: "日常", Status: models.TopicClosed, EndTime: time.Now().Add(time.Hour), AuthorID: op.ID}
	require.NoError(t, db.Create(&closed).Error)

	a := models.AnswerModel{Content: "回答", AuthorName: "賢いパンダ", TopicID: open.ID, AuthorID: op.ID}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&models.LikeModel{UserID: op.ID, AnswerID: a.ID, TopicID: open.ID}).Error)
	require.NoError(t, db.Create(&models.TagModel{Name: "夏", UsageCount: 1}).Error)

	stats, err := svc.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Users)
	assert.Equal(t, int64(3), stats.Topics)
	assert.Equal(t, int64(1), stats.ActiveTopics)
	assert.Equal(t, int64(2), stats.ClosedTopics)
	assert.Equal(t, int64(1), stats.Answers)
	assert.Equal(t, int64(1), stats.Likes)
	assert.Equal(t, int64(1), stats.Tags)
	assert.Equal(t, int64(0), stats.Replies)
	assert.Len(t, stats.RecentTopics, 3)
}
