package service

import (
	"strings"

	"github.com/parskala/internal/logger"
	"github.com/parskala/internal/models"
	"github.com/parskala/internal/repository"
)

// TutorialService 视频教程业务服务
type TutorialService struct {
	repo repository.TutorialRepository
}

// NewTutorialService 创建教程服务
func NewTutorialService(repo repository.TutorialRepository) *TutorialService {
	return &TutorialService{repo: repo}
}

// TutorialInput 创建/更新教程输入
type TutorialInput struct {
	Title       string
	Description string
	VideoURL    string
	VideoType   string
	Thumbnail   string
	Category    string
	Duration    string
	IsFree      bool
	IsActive    bool
	SortOrder   int
}

// List 教程列表
func (s *TutorialService) List(filter repository.TutorialListFilter) ([]models.Tutorial, int64, error) {
	return s.repo.List(filter)
}

// Get 获取教程详情并累加播放次数
func (s *TutorialService) Get(id uint, countView bool) (*models.Tutorial, error) {
	tutorial, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tutorial == nil {
		return nil, ErrTutorialNotFound
	}
	if countView {
		if err := s.repo.IncrementViewCount(tutorial.ID); err != nil {
			logger.Warnw("tutorial_view_count_failed", "tutorial_id", tutorial.ID, "error", err)
		} else {
			tutorial.ViewCount++
		}
	}
	return tutorial, nil
}

// Create 创建教程
func (s *TutorialService) Create(input TutorialInput) (*models.Tutorial, error) {
	if err := normalizeTutorialInput(&input); err != nil {
		return nil, err
	}

	tutorial := models.Tutorial{
		Title:       input.Title,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		VideoType:   input.VideoType,
		Thumbnail:   input.Thumbnail,
		Category:    input.Category,
		Duration:    input.Duration,
		IsFree:      input.IsFree,
		IsActive:    input.IsActive,
		SortOrder:   input.SortOrder,
	}
	if err := s.repo.Create(&tutorial); err != nil {
		return nil, err
	}
	return &tutorial, nil
}

// Update 更新教程
func (s *TutorialService) Update(id uint, input TutorialInput) (*models.Tutorial, error) {
	tutorial, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tutorial == nil {
		return nil, ErrTutorialNotFound
	}
	if err := normalizeTutorialInput(&input); err != nil {
		return nil, err
	}

	tutorial.Title = input.Title
	tutorial.Description = input.Description
	tutorial.VideoURL = input.VideoURL
	tutorial.VideoType = input.VideoType
	tutorial.Thumbnail = input.Thumbnail
	tutorial.Category = input.Category
	tutorial.Duration = input.Duration
	tutorial.IsFree = input.IsFree
	tutorial.IsActive = input.IsActive
	tutorial.SortOrder = input.SortOrder

	if err := s.repo.Update(tutorial); err != nil {
		return nil, err
	}
	return tutorial, nil
}

// Delete 删除教程
func (s *TutorialService) Delete(id uint) error {
	tutorial, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if tutorial == nil {
		return ErrTutorialNotFound
	}
	return s.repo.Delete(id)
}

func normalizeTutorialInput(input *TutorialInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.VideoURL = strings.TrimSpace(input.VideoURL)
	if input.Title == "" || input.VideoURL == "" {
		return ErrProductInvalid
	}
	switch strings.ToLower(strings.TrimSpace(input.VideoType)) {
	case models.TutorialVideoTypeUpload:
		input.VideoType = models.TutorialVideoTypeUpload
	default:
		input.VideoType = models.TutorialVideoTypeEmbed
	}
	return nil
}
