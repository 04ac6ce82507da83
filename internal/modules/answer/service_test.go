package answer

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/kyomei/core/internal/database"
	"github.com/kyomei/core/internal/models"
	"github.com/kyomei/core/internal/pkg/pagination"
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

func seedUser(t *testing.T, db *gorm.DB, username string) *models.UserModel {
	t.Helper()
	u := models.UserModel{Username: username, Password: "x"}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedTopic(t *testing.T, db *gorm.DB, status models.TopicStatus, endTime time.Time) *models.TopicModel {
	t.Helper()
	author := seedUser(t, db, fmt.Sprintf("operator%d", time.Now().UnixNano()))
	topic := models.TopicModel{
		Number:   int(time.Now().UnixNano() % 1_000_000),
		Title:    "今週のテーマ",
		Subject:  "日常",
		Status:   status,
		EndTime:  endTime,
		AuthorID: author.ID,
	}
	require.NoError(t, db.Create(&topic).Error)
	return &topic
}

func TestSubmit(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	topic := seedTopic(t, db, models.TopicActive, time.Now().Add(time.Hour))
	user := seedUser(t, db, "writer")

	a, err := svc.Submit(user.ID, topic.ID, "私の回答です")
	require.NoError(t, err)
	assert.Equal(t, "私の回答です", a.Content)
	assert.NotEmpty(t, a.AuthorName)
	assert.NotEqual(t, "writer", a.AuthorName)
	assert.Equal(t, 0, a.LikeCount)
}

func TestSubmitQuota(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	topic := seedTopic(t, db, models.TopicActive, time.Now().Add(time.Hour))
	user := seedUser(t, db, "writer")

	for i := 0; i < models.AnswerQuotaPerTopic; i++ {
		_, err := svc.Submit(user.ID, topic.ID, fmt.Sprintf("回答%d", i))
		require.NoError(t, err)
	}

	_, err := svc.Submit(user.ID, topic.ID, "4つ目")
	assert.ErrorIs(t, err, errQuotaExceeded)

	// another user still has the full allowance
	other := seedUser(t, db, "other")
	_, err = svc.Submit(other.ID, topic.ID, "別の人の回答")
	assert.NoError(t, err)
}

func TestSubmitClosedTopic(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	topic := seedTopic(t, db, models.TopicClosed, time.Now().Add(time.Hour))
	user := seedUser(t, db, "writer")

	_, err := svc.Submit(user.ID, topic.ID, "回答")
	assert.ErrorIs(t, err, errTopicClosed)
}

func TestSubmitAfterDeadline(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	topic := seedTopic(t, db, models.TopicActive, time.Now().Add(-time.Minute))
	user := seedUser(t, db, "writer")

	_, err := svc.Submit(user.ID, topic.ID, "回答")
	assert.ErrorIs(t, err, errTopicExpired)
}

func TestSubmitUnknownTopic(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := seedUser(t, db, "writer")

	_, err := svc.Submit(user.ID, "no-such-id", "回答")
	assert.ErrorIs(t, err, errTopicNotFound)
}

func TestListByTopicSortedByLikes(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	topic := seedTopic(t, db, models.TopicActive, time.Now().Add(time.Hour))

	counts := []int{1, 5, 3}
	for i, n := range counts {
		u := seedUser(t, db, fmt.Sprintf("writer%d", i))
		a, err := svc.Submit(u.ID, topic.ID, fmt.Sprintf("回答%d", i))
		require.NoError(t, err)
		require.NoError(t, db.Model(&models.AnswerModel{}).Where("id = ?", a.ID).UpdateColumn("like_count", n).Error)
	}

	answers, p, err := svc.ListByTopic(topic.ID, ListQuery{}, pagination.Query{Page: 1, Size: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.Total)
	require.Len(t, answers, 3)
	assert.Equal(t, 5, answers[0].LikeCount)
	assert.Equal(t, 3, answers[1].LikeCount)
	assert.Equal(t, 1, answers[2].LikeCount)

	byAge, _, err := svc.ListByTopic(topic.ID, ListQuery{SortBy: "createdAt", Order: "asc"}, pagination.Query{Page: 1, Size: 20})
	require.NoError(t, err)
	assert.Equal(t, "回答0", byAge[0].Content)
}

func TestListByTopicUnknownTopic(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	_, _, err := svc.ListByTopic("no-such-id", ListQuery{}, pagination.Query{Page: 1, Size: 20})
	assert.ErrorIs(t, err, errTopicNotFound)
}

func TestMine(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	topic := seedTopic(t, db, models.TopicActive, time.Now().Add(time.Hour))
	user := seedUser(t, db, "writer")
	other := seedUser(t, db, "other")

	_, err := svc.Submit(user.ID, topic.ID, "自分の回答")
	require.NoError(t, err)
	_, err = svc.Submit(other.ID, topic.ID, "他人の回答")
	require.NoError(t, err)

	mine, p, err := svc.Mine(user.ID, pagination.Query{Page: 1, Size: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Total)
	require.Len(t, mine, 1)
	assert.Equal(t, "自分の回答", mine[0].Content)
	require.NotNil(t, mine[0].Topic)
	assert.Equal(t, topic.ID, mine[0].Topic.ID)
}

func TestReply(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	topic := seedTopic(t, db, models.TopicActive, time.Now().Add(time.Hour))
	user := seedUser(t, db, "writer")

	a, err := svc.Submit(user.ID, topic.ID, "回答")
	require.NoError(t, err)

	r, err := svc.Reply(user.ID, a.ID, "なるほど")
	require.NoError(t, err)
	assert.Equal(t, a.ID, r.AnswerID)
	assert.NotEmpty(t, r.AuthorName)

	replies, err := svc.ListReplies(a.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "なるほど", replies[0].Content)

	_, err = svc.Reply(user.ID, "no-such-id", "x")
	assert.ErrorIs(t, err, errAnswerNotFound)
	_, err = svc.ListReplies("no-such-id")
	assert.ErrorIs(t, err, errAnswerNotFound)
}
