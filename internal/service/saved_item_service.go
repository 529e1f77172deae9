package service

import (
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
)

type SavedItemService struct {
	Repo *repository.SavedItemRepository
}

func NewSavedItemService(repo *repository.SavedItemRepository) *SavedItemService {
	return &SavedItemService{Repo: repo}
}

func validSavedKind(kind string) bool {
	switch kind {
	case model.SavedKindNote, model.SavedKindQuestion, model.SavedKindTest:
		return true
	}
	return false
}

func (s *SavedItemService) Save(userID uint, kind, targetID string) error {
	if !validSavedKind(kind) {
		return util.ErrInvalidSavedKind
	}
	return s.Repo.Save(&model.SavedItem{
		UserID:   userID,
		Kind:     kind,
		TargetID: targetID,
	})
}

func (s *SavedItemService) Unsave(userID uint, kind, targetID string) error {
	if !validSavedKind(kind) {
		return util.ErrInvalidSavedKind
	}
	return s.Repo.Unsave(userID, kind, targetID)
}

func (s *SavedItemService) List(userID uint, kind string, page, limit int) ([]model.SavedItem, int64, error) {
	if kind != "" && !validSavedKind(kind) {
		return nil, 0, util.ErrInvalidSavedKind
	}
	return s.Repo.ListByUser(userID, kind, page, limit)
}
