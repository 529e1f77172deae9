package service

import (
	"errors"
	"mime/multipart"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
)

type NoteService struct {
	Repo    *repository.NoteRepository
	Storage *StorageService
}

func NewNoteService(repo *repository.NoteRepository, storage *StorageService) *NoteService {
	return &NoteService{Repo: repo, Storage: storage}
}

type NoteReq struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Subject  *string `json:"subject"`
	IsPublic *bool   `json:"isPublic"`
}

func (s *NoteService) Create(userID uint, req NoteReq) (*model.Note, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}

	note := &model.Note{
		UserID: userID,
		Title:  *req.Title,
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Subject != nil {
		note.Subject = *req.Subject
	}
	if req.IsPublic != nil {
		note.IsPublic = *req.IsPublic
	}

	if err := s.Repo.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Get(userID uint, noteID string) (*model.Note, error) {
	note, err := s.Repo.FindByID(noteID)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID && !note.IsPublic {
		return nil, util.ErrPermissionDenied
	}
	return note, nil
}

func (s *NoteService) Update(userID uint, noteID string, req NoteReq) (*model.Note, error) {
	note, err := s.Repo.FindByID(noteID)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	if req.Title != nil && *req.Title != "" {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Subject != nil {
		note.Subject = *req.Subject
	}
	if req.IsPublic != nil {
		note.IsPublic = *req.IsPublic
	}

	if err := s.Repo.Update(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Delete(userID uint, noteID string) error {
	note, err := s.Repo.FindByID(noteID)
	if err != nil {
		return err
	}
	if note.UserID != userID {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(noteID)
}

func (s *NoteService) List(userID uint, subject string, page, limit int) ([]model.Note, int64, error) {
	return s.Repo.ListByUser(userID, subject, page, limit)
}

// AttachFile 上传笔记附件并记录 URL
func (s *NoteService) AttachFile(userID uint, noteID string, file *multipart.FileHeader) (*model.Note, error) {
	note, err := s.Repo.FindByID(noteID)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	url, err := s.Storage.Upload(file, "notes")
	if err != nil {
		return nil, err
	}

	note.FileURL = url
	if err := s.Repo.Update(note); err != nil {
		return nil, err
	}
	return note, nil
}
