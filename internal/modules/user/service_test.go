package user

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/kyomei/core/internal/database"
	"github.com/kyomei/core/internal/models"
	"github.com/kyomei/core/internal/pkg/jwt"
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

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	first, err := svc.Register(RegisterRequest{Username: "operator", Password: "secret-pass"})
	require.NoError(t, err)
	assert.True(t, first.IsAdmin)
	assert.Equal(t, "operator", first.Name)
	assert.NotEqual(t, "secret-pass", first.Password)

	second, err := svc.Register(RegisterRequest{Username: "visitor", Password: "secret-pass"})
	require.NoError(t, err)
	assert.False(t, second.IsAdmin)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.Register(RegisterRequest{Username: "taken", Password: "secret-pass"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterRequest{Username: "taken", Password: "other-pass"})
	assert.ErrorIs(t, err, errUsernameTaken)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	created, err := svc.Register(RegisterRequest{Username: "alice01", Password: "secret-pass"})
	require.NoError(t, err)

	result, err := svc.Login(LoginRequest{Username: "alice01", Password: "secret-pass"}, "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, created.ID, result.User.ID)
	assert.NotNil(t, result.User.LastLoginTime)

	claims, err := jwt.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)

	_, err = svc.Login(LoginRequest{Username: "alice01", Password: "wrong"}, "127.0.0.1")
	assert.ErrorIs(t, err, errBadCredential)

	_, err = svc.Login(LoginRequest{Username: "nobody", Password: "secret-pass"}, "127.0.0.1")
	assert.ErrorIs(t, err, errBadCredential)
}

func TestUpdateMe(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	created, err := svc.Register(RegisterRequest{Username: "alice01", Password: "secret-pass"})
	require.NoError(t, err)

	name := "アリス"
	newPass := "new-secret-pass"
	updated, err := svc.UpdateMe(created.ID, UpdateMeRequest{Name: &name, Password: &newPass})
	require.NoError(t, err)
	assert.Equal(t, "アリス", updated.Name)

	_, err = svc.Login(LoginRequest{Username: "alice01", Password: "secret-pass"}, "")
	assert.ErrorIs(t, err, errBadCredential)
	_, err = svc.Login(LoginRequest{Username: "alice01", Password: newPass}, "")
	assert.NoError(t, err)

	_, err = svc.UpdateMe("no-such-id", UpdateMeRequest{Name: &name})
	assert.ErrorIs(t, err, errUserNotFound)
}

func TestMeWithStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	created, err := svc.Register(RegisterRequest{Username: "alice01", Password: "secret-pass"})
	require.NoError(t, err)
	liker, err := svc.Register(RegisterRequest{Username: "bob01", Password: "secret-pass"})
	require.NoError(t, err)

	topic := models.TopicModel{Number: 1, Title: "テーマ", Subject: "日常", Status: models.TopicActive, EndTime: time.Now().Add(time.Hour), AuthorID: created.ID}
	require.NoError(t, db.Create(&topic).Error)
	a := models.AnswerModel{Content: "回答", AuthorName: "賢いパンダ", TopicID: topic.ID, AuthorID: created.ID}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&models.LikeModel{UserID: liker.ID, AnswerID: a.ID, TopicID: topic.ID}).Error)

	me, err := svc.MeWithStats(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice01", me.Username)
	assert.Equal(t, int64(1), me.Stats.Topics)
	assert.Equal(t, int64(1), me.Stats.Answers)
	assert.Equal(t, int64(1), me.Stats.LikesReceived)

	_, err = svc.MeWithStats("no-such-id")
	assert.ErrorIs(t, err, errUserNotFound)
}
