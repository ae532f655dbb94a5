package service

import (
	"context"
	"time"

	"college-portal-be/internal/dto"
	"college-portal-be/internal/entity"
	"college-portal-be/internal/pkg/apperror"
	"college-portal-be/internal/repository/specification"
	"college-portal-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type INoticeService interface {
	Create(ctx context.Context, createdBy uuid.UUID, req *dto.CreateNoticeRequest) (*dto.NoticeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateNoticeRequest) (*dto.NoticeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListForRole(ctx context.Context, role string) ([]*dto.NoticeResponse, error)
}

type noticeService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewNoticeService(uowFactory unitofwork.RepositoryFactory) INoticeService {
	return &noticeService{uowFactory: uowFactory}
}

func (s *noticeService) Create(ctx context.Context, createdBy uuid.UUID, req *dto.CreateNoticeRequest) (*dto.NoticeResponse, error) {
	priority := req.Priority
	if priority == "" {
		priority = "normal"
	}

	notice := &entity.Notice{
		Id:             uuid.New(),
		Title:          req.Title,
		Content:        req.Content,
		Priority:       priority,
		TargetAudience: req.TargetAudience,
		IsActive:       true,
		ExpiresAt:      req.ExpiresAt,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoticeRepository().Create(ctx, notice); err != nil {
		return nil, err
	}
	return noticeToResponse(notice), nil
}

func (s *noticeService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateNoticeRequest) (*dto.NoticeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notice, err := uow.NoticeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if notice == nil {
		return nil, apperror.NotFound("notice not found")
	}

	if req.Title != nil {
		notice.Title = *req.Title
	}
	if req.Content != nil {
		notice.Content = *req.Content
	}
	if req.Priority != nil {
		notice.Priority = *req.Priority
	}
	if req.TargetAudience != nil {
		notice.TargetAudience = req.TargetAudience
	}
	if req.IsActive != nil {
		notice.IsActive = *req.IsActive
	}
	if req.ExpiresAt != nil {
		notice.ExpiresAt = req.ExpiresAt
	}
	now := time.Now()
	notice.UpdatedAt = &now

	if err := uow.NoticeRepository().Update(ctx, notice); err != nil {
		return nil, err
	}
	return noticeToResponse(notice), nil
}

func (s *noticeService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notice, err := uow.NoticeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if notice == nil {
		return apperror.NotFound("notice not found")
	}
	return uow.NoticeRepository().Delete(ctx, id)
}

func (s *noticeService) ListForRole(ctx context.Context, role string) ([]*dto.NoticeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notices, err := uow.NoticeRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]*dto.NoticeResponse, 0, len(notices))
	for _, notice := range notices {
		if !notice.VisibleTo(role, now) {
			continue
		}
		result = append(result, noticeToResponse(notice))
	}
	return result, nil
}

func noticeToResponse(notice *entity.Notice) *dto.NoticeResponse {
	return &dto.NoticeResponse{
		Id:             notice.Id,
		Title:          notice.Title,
		Content:        notice.Content,
		Priority:       notice.Priority,
		TargetAudience: notice.TargetAudience,
		IsActive:       notice.IsActive,
		ExpiresAt:      notice.ExpiresAt,
		CreatedBy:      notice.CreatedBy,
		CreatedAt:      notice.CreatedAt,
	}
}
