package user

import (
	"errors"
	"time"

	"github.com/kyomei/core/internal/models"
	"github.com/kyomei/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 7 * 24 * time.Hour

var (
	errUsernameTaken = errors.New("username already taken")
	errBadCredential = errors.New("invalid username or password")
	errUserNotFound  = errors.New("user not found")
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Register creates a user. The very first account becomes the operator
// (admin), matching the single-operator bootstrap.
func (s *Service) Register(req RegisterRequest) (*models.UserModel, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user models.UserModel
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.UserModel{}).
			Where("username = ?", req.Username).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return errUsernameTaken
		}

		var total int64
		if err := tx.Model(&models.UserModel{}).Count(&total).Error; err != nil {
			return err
		}

		name := req.Name
		if name == "" {
			name = req.Username
		}
		user = models.UserModel{
			Username: req.Username,
			Name:     name,
			Mail:     req.Mail,
			Password: string(hash),
			IsAdmin:  total == 0,
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errUsernameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks the credentials and issues a JWT.
func (s *Service) Login(req LoginRequest, clientIP string) (*LoginResult, error) {
	var user models.UserModel
	if err := s.db.First(&user, "username = ?", req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBadCredential
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errBadCredential
	}

	now := time.Now()
	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   clientIP,
	}).Error; err != nil {
		return nil, err
	}
	user.LastLoginTime = &now

	token, err := jwt.Sign(user.ID, tokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

// MeWithStats returns the caller's profile together with activity
// counters. Hearts received are counted from the like ledger, not the
// cached counters.
func (s *Service) MeWithStats(userID string) (*MeView, error) {
	user, err := s.Me(userID)
	if err != nil {
		return nil, err
	}

	view := MeView{UserModel: *user}
	if err := s.db.Model(&models.TopicModel{}).
		Where("author_id = ?", userID).
		Count(&view.Stats.Topics).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.AnswerModel{}).
		Where("author_id = ?", userID).
		Count(&view.Stats.Answers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.LikeModel{}).
		Joins("JOIN answers ON answers.id = likes.answer_id").
		Where("answers.author_id = ?", userID).
		Count(&view.Stats.LikesReceived).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

// Me returns the caller's own profile.
func (s *Service) Me(userID string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateMe edits the caller's own profile.
func (s *Service) UpdateMe(userID string, req UpdateMeRequest) (*models.UserModel, error) {
	user, err := s.Me(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
		user.Name = *req.Name
	}
	if req.Mail != nil {
		updates["mail"] = *req.Mail
		user.Mail = *req.Mail
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
		user.Avatar = *req.Avatar
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
		user.Password = string(hash)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.UserModel{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return user, nil
}
