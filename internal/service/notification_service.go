package service

import (
	"context"
	"fmt"
	"strconv"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const unreadCountTTL = 5 * time.Minute

type NotificationService struct {
	Repo  *repository.NotificationRepository
	Redis *redis.Client
}

func NewNotificationService(repo *repository.NotificationRepository, rdb *redis.Client) *NotificationService {
	return &NotificationService{Repo: repo, Redis: rdb}
}

func unreadKey(userID uint) string {
	return fmt.Sprintf("studyhub:notify:unread:%d", userID)
}

// Notify 为用户写入一条通知并失效未读数缓存
func (s *NotificationService) Notify(userID uint, notifyType, title, content, refID string) error {
	n := &model.Notification{
		UserID:  userID,
		Type:    notifyType,
		Title:   title,
		Content: content,
		RefID:   refID,
	}
	if err := s.Repo.Create(n); err != nil {
		return err
	}
	s.invalidateUnread(userID)
	return nil
}

func (s *NotificationService) List(userID uint, onlyUnread bool, page, limit int) ([]model.Notification, int64, error) {
	return s.Repo.ListByUser(userID, onlyUnread, page, limit)
}

func (s *NotificationService) MarkRead(userID uint, id string) error {
	if err := s.Repo.MarkRead(id, userID); err != nil {
		return err
	}
	s.invalidateUnread(userID)
	return nil
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	if err := s.Repo.MarkAllRead(userID); err != nil {
		return err
	}
	s.invalidateUnread(userID)
	return nil
}

// UnreadCount 未读数，redis 缓存 5 分钟，miss 时回源数据库
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, unreadKey(userID)).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.Repo.CountUnread(userID)
	if err != nil {
		return 0, err
	}

	if s.Redis != nil {
		if err := s.Redis.Set(ctx, unreadKey(userID), count, unreadCountTTL).Err(); err != nil {
			logger.Log.Warn("failed to cache unread count", zap.Uint("userId", userID), zap.Error(err))
		}
	}
	return count, nil
}

func (s *NotificationService) invalidateUnread(userID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), unreadKey(userID)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate unread count cache", zap.Uint("userId", userID), zap.Error(err))
	}
}
