package service

import (
	"mime/multipart"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	SessionRepo *repository.StudySessionRepository
	Storage     *StorageService
}

func NewUserService(userRepo *repository.UserRepository, sessionRepo *repository.StudySessionRepository, storage *StorageService) *UserService {
	return &UserService{UserRepo: userRepo, SessionRepo: sessionRepo, Storage: storage}
}

type ProfileReq struct {
	Name   *string `json:"name"`
	Bio    *string `json:"bio"`
	School *string `json:"school"`
}

type ProfileResp struct {
	User              *model.User `json:"user"`
	TotalStudySeconds int64       `json:"totalStudySeconds"`
}

func (s *UserService) GetProfile(userID uint) (*ProfileResp, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	total, err := s.SessionRepo.TotalDuration(userID)
	if err != nil {
		return nil, err
	}

	return &ProfileResp{User: user, TotalStudySeconds: total}, nil
}

func (s *UserService) UpdateProfile(userID uint, req ProfileReq) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.School != nil {
		user.School = *req.School
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(userID uint, file *multipart.FileHeader) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", err
	}

	url, err := s.Storage.Upload(file, "avatars")
	if err != nil {
		return "", err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}
