package service

import (
	"errors"
	"time"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo  *repository.UserRepository
	ChildRepo *repository.ChildRepository
}

func NewUserService(userRepo *repository.UserRepository, childRepo *repository.ChildRepository) *UserService {
	return &UserService{
		UserRepo:  userRepo,
		ChildRepo: childRepo,
	}
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Avatar   string `json:"avatar"`
}

type ChildRequest struct {
	Name   string `json:"name" binding:"required"`
	DOB    string `json:"dob" binding:"required"`
	Gender string `json:"gender"`
	Avatar string `json:"avatar"`
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Language != "" {
		user.Language = req.Language
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) AddChild(userID uint, req *ChildRequest) (*model.Child, error) {
	dob, err := time.Parse(util.DateFormat, req.DOB)
	if err != nil {
		return nil, util.ErrInvalidDate
	}

	child := &model.Child{
		UserID: userID,
		Name:   req.Name,
		DOB:    dob,
		Gender: req.Gender,
		Avatar: req.Avatar,
	}
	if err := s.ChildRepo.Create(child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *UserService) ListChildren(userID uint) ([]model.Child, error) {
	return s.ChildRepo.FindByUser(userID)
}

func (s *UserService) UpdateChild(userID, childID uint, req *ChildRequest) (*model.Child, error) {
	child, err := s.ownedChild(userID, childID)
	if err != nil {
		return nil, err
	}

	child.Name = req.Name
	child.Gender = req.Gender
	if req.Avatar != "" {
		child.Avatar = req.Avatar
	}
	if req.DOB != "" {
		dob, err := time.Parse(util.DateFormat, req.DOB)
		if err != nil {
			return nil, util.ErrInvalidDate
		}
		child.DOB = dob
	}

	if err := s.ChildRepo.Update(child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *UserService) DeleteChild(userID, childID uint) error {
	if _, err := s.ownedChild(userID, childID); err != nil {
		return err
	}
	return s.ChildRepo.Delete(childID)
}

// ResolveChild maps an optional childId to a concrete child owned by the
// caller. Zero means "the default child", which is the oldest profile.
func (s *UserService) ResolveChild(userID, childID uint) (*model.Child, error) {
	if childID == 0 {
		child, err := s.ChildRepo.FirstByUser(userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChildNotFound
		}
		return child, err
	}
	return s.ownedChild(userID, childID)
}

func (s *UserService) ownedChild(userID, childID uint) (*model.Child, error) {
	child, err := s.ChildRepo.FindByID(childID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrChildNotFound
	}
	if err != nil {
		return nil, err
	}
	if child.UserID != userID {
		return nil, util.ErrChildNotFound
	}
	return child, nil
}

func (s *UserService) ListUsers(page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.List(page, limit)
}

func (s *UserService) DisableUser(userID uint, disabled bool) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	user.Disabled = disabled
	return s.UserRepo.Update(user)
}
