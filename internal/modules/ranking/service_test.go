package ranking

import (
	"context"
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

func seedUser(t *testing.T, db *gorm.DB, username, name string) *models.UserModel {
	t.Helper()
	u := models.UserModel{Username: username, Name: name, Password: "x"}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedAnswer(t *testing.T, db *gorm.DB, topicID, authorID string, likeCount int, postedAt time.Time) {
	t.Helper()
	a := models.AnswerModel{
		Content:    "回答",
		AuthorName: "賢いパンダ",
		LikeCount:  likeCount,
		TopicID:    topicID,
		AuthorID:   authorID,
	}
	a.CreatedAt = postedAt
	require.NoError(t, db.Create(&a).Error)
}

func TestGetRanksUsersByWeeklyAnswers(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	op := seedUser(t, db, "operator", "")
	topic := models.TopicModel{Number: 1, Title: "テーマ", Subject: "日常", Status: models.TopicActive, EndTime: time.Now().Add(time.Hour), AuthorID: op.ID}
	require.NoError(t, db.Create(&topic).Error)

	alice := seedUser(t, db, "alice01", "アリス")
	bob := seedUser(t, db, "bob01", "")
	carol := seedUser(t, db, "carol01", "キャロル")

	now := time.Now()
	seedAnswer(t, db, topic.ID, alice.ID, 3, now.Add(-time.Hour))
	seedAnswer(t, db, topic.ID, bob.ID, 2, now.Add(-2*time.Hour))
	seedAnswer(t, db, topic.ID, bob.ID, 3, now.Add(-3*time.Hour))
	// answers posted before the window stay off the board no matter how
	// recently their hearts arrived
	seedAnswer(t, db, topic.ID, carol.ID, 4, now.Add(-10*24*time.Hour))
	liker := seedUser(t, db, "liker01", "")
	var old models.AnswerModel
	require.NoError(t, db.First(&old, "author_id = ?", carol.ID).Error)
	require.NoError(t, db.Create(&models.LikeModel{UserID: liker.ID, AnswerID: old.ID, TopicID: topic.ID}).Error)

	result, err := svc.Get(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Users, 2)
	assert.Equal(t, 1, result.Users[0].Rank)
	assert.Equal(t, "bob01", result.Users[0].Name) // falls back to username
	assert.Equal(t, int64(5), result.Users[0].LikeCount)
	assert.Equal(t, int64(2), result.Users[0].AnswerCount)
	assert.Equal(t, "アリス", result.Users[1].Name)
	assert.Equal(t, int64(3), result.Users[1].LikeCount)
	assert.Equal(t, int64(1), result.Users[1].AnswerCount)
}

func TestGetRanksTags(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	usages := map[string]int{"夏": 5, "旅行": 3, "仕事": 1, "音楽": 0}
	for name, n := range usages {
		require.NoError(t, db.Create(&models.TagModel{Name: name, UsageCount: n}).Error)
	}

	result, err := svc.Get(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Tags, 3)
	assert.Equal(t, "夏", result.Tags[0].Name)
	assert.Equal(t, "up", result.Tags[0].Trend)
	assert.Equal(t, "旅行", result.Tags[1].Name)
	assert.Equal(t, "up", result.Tags[1].Trend)
	assert.Equal(t, "仕事", result.Tags[2].Name)
	assert.Equal(t, "stable", result.Tags[2].Trend)
}

func TestGetEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	result, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Users)
	assert.Empty(t, result.Tags)
	assert.False(t, result.GeneratedAt.IsZero())
}
