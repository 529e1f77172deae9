package service

import (
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"

	"gorm.io/gorm"
)

type VoteService struct {
	Repo   *repository.VoteRepository
	QARepo *repository.QARepository
}

func NewVoteService(repo *repository.VoteRepository, qaRepo *repository.QARepository) *VoteService {
	return &VoteService{Repo: repo, QARepo: qaRepo}
}

// Cast 投票。重复投同方向为幂等；换边时先撤旧票再记新票。
func (s *VoteService) Cast(userID uint, targetType, targetID string, value int) error {
	if value != 1 && value != -1 {
		return util.ErrInvalidVoteValue
	}
	if targetType != model.VoteTargetQuestion && targetType != model.VoteTargetAnswer {
		return errors.New("unsupported vote target type")
	}

	existing, err := s.Repo.Find(userID, targetType, targetID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		vote := &model.Vote{
			UserID:     userID,
			TargetType: targetType,
			TargetID:   targetID,
			Value:      value,
		}
		if err := s.Repo.Create(vote); err != nil {
			return err
		}
		return s.QARepo.AdjustUpvotes(targetType, targetID, value)
	}

	if existing.Value == value {
		return nil
	}

	delta := value - existing.Value // 换边时 ±2
	existing.Value = value
	if err := s.Repo.Update(existing); err != nil {
		return err
	}
	return s.QARepo.AdjustUpvotes(targetType, targetID, delta)
}

// Retract 撤票
func (s *VoteService) Retract(userID uint, targetType, targetID string) error {
	existing, err := s.Repo.Find(userID, targetType, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := s.Repo.Delete(existing.ID); err != nil {
		return err
	}
	return s.QARepo.AdjustUpvotes(targetType, targetID, -existing.Value)
}
