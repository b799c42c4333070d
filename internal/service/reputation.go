package service

import (
	"context"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/repository"
)

type reputationService struct {
	reputationRepo repository.ReputationRepository
}

func NewReputationService(reputationRepo repository.ReputationRepository) ReputationService {
	return &reputationService{reputationRepo: reputationRepo}
}

func (s *reputationService) GetScore(ctx context.Context, userID int32) (float64, error) {
	return s.reputationRepo.GetScore(ctx, userID)
}

func (s *reputationService) GetHistory(ctx context.Context, userID int32, page domain.Page) ([]domain.ReputationEntry, int32, error) {
	return s.reputationRepo.ListEntries(ctx, userID, page)
}
