package service

import (
	"context"
	"errors"
	"fmt"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ContestService struct {
	Repo     *repository.ContestRepository
	UserRepo *repository.UserRepository
	Redis    *redis.Client
}

func NewContestService(repo *repository.ContestRepository, userRepo *repository.UserRepository, rdb *redis.Client) *ContestService {
	return &ContestService{Repo: repo, UserRepo: userRepo, Redis: rdb}
}

func leaderboardKey(contestID string) string {
	return "studyhub:contest:leaderboard:" + contestID
}

type ContestReq struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	TestID      string    `json:"testId" binding:"required"`
	StartAt     time.Time `json:"startAt" binding:"required"`
	EndAt       time.Time `json:"endAt" binding:"required"`
}

func (s *ContestService) Create(req ContestReq) (*model.Contest, error) {
	if !req.EndAt.After(req.StartAt) {
		return nil, errors.New("endAt must be after startAt")
	}

	contest := &model.Contest{
		Title:       req.Title,
		Description: req.Description,
		TestID:      req.TestID,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
	}
	if err := s.Repo.Create(contest); err != nil {
		return nil, err
	}
	return contest, nil
}

func (s *ContestService) List(page, limit int) ([]model.Contest, int64, error) {
	return s.Repo.List(page, limit)
}

func (s *ContestService) Get(id string) (*model.Contest, error) {
	return s.Repo.FindByID(id)
}

// Join 报名比赛，重复报名幂等
func (s *ContestService) Join(userID uint, contestID string) error {
	contest, err := s.Repo.FindByID(contestID)
	if err != nil {
		return err
	}

	now := time.Now()
	if now.After(contest.EndAt) {
		return util.ErrContestNotRunning
	}

	return s.Repo.Join(&model.ContestParticipant{
		ContestID: contestID,
		UserID:    userID,
	})
}

// RecordResult 作答完成后回写比赛成绩。
// 只在比赛进行中、且成绩高于已有成绩时生效；排行榜同步进 redis 有序集合。
func (s *ContestService) RecordResult(userID uint, testID string, score int) error {
	contest, err := s.Repo.FindByTestID(testID)
	if err != nil {
		if errors.Is(err, util.ErrContestNotFound) {
			return nil // 普通测试，与比赛无关
		}
		return err
	}

	now := time.Now()
	if now.Before(contest.StartAt) || now.After(contest.EndAt) {
		return nil
	}

	participant, err := s.Repo.FindParticipant(contest.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // 未报名，不计入排行
		}
		return err
	}

	if score <= participant.Score {
		return nil
	}

	if err := s.Repo.UpdateParticipantScore(contest.ID, userID, score); err != nil {
		return err
	}

	if s.Redis != nil {
		err := s.Redis.ZAdd(context.Background(), leaderboardKey(contest.ID), &redis.Z{
			Score:  float64(score),
			Member: fmt.Sprintf("%d", userID),
		}).Err()
		if err != nil {
			logger.Log.Warn("failed to update contest leaderboard",
				zap.String("contestId", contest.ID), zap.Error(err))
		}
	}
	return nil
}

type LeaderboardEntry struct {
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Rank   int    `json:"rank"`
}

// Leaderboard 前 N 名，来自 redis 有序集合
func (s *ContestService) Leaderboard(contestID string, top int) ([]LeaderboardEntry, error) {
	// 未接入 redis 时没有榜单数据
	if s.Redis == nil {
		return []LeaderboardEntry{}, nil
	}
	if _, err := s.Repo.FindByID(contestID); err != nil {
		return nil, err
	}
	if top <= 0 {
		top = 10
	}

	zs, err := s.Redis.ZRevRangeWithScores(context.Background(), leaderboardKey(contestID), 0, int64(top-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		var userID uint
		fmt.Sscanf(z.Member.(string), "%d", &userID)

		name := ""
		if user, err := s.UserRepo.FindByID(userID); err == nil {
			name = user.Name
		}

		entries = append(entries, LeaderboardEntry{
			UserID: userID,
			Name:   name,
			Score:  int(z.Score),
			Rank:   i + 1,
		})
	}
	return entries, nil
}
