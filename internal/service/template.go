package service

import (
	"context"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/logger"
	"gearcheck-backend/internal/repository"
)

type templateService struct {
	templateRepo repository.TemplateRepository
	eventRepo    repository.EventLogRepository
}

func NewTemplateService(templateRepo repository.TemplateRepository, eventRepo repository.EventLogRepository) TemplateService {
	return &templateService{templateRepo: templateRepo, eventRepo: eventRepo}
}

func validateTemplate(tpl *domain.AssessmentTemplate) error {
	if tpl.Name == "" {
		return domain.NewValidationError("template name is required")
	}
	if len(tpl.Criteria) == 0 {
		return domain.NewValidationError("template must define at least one criterion")
	}
	seen := make(map[string]bool, len(tpl.Criteria))
	for _, c := range tpl.Criteria {
		if c.ID == "" {
			return domain.NewValidationError("criterion ID is required")
		}
		if seen[c.ID] {
			return domain.NewValidationError("duplicate criterion ID %s", c.ID)
		}
		seen[c.ID] = true
		if c.Weight <= 0 {
			return domain.NewValidationError("criterion %s must have a positive weight", c.ID)
		}
		if len(c.Options) == 0 {
			return domain.NewValidationError("criterion %s must define at least one option", c.ID)
		}
		for _, opt := range c.Options {
			if opt.Value < 1 || opt.Value > 5 {
				return domain.NewValidationError("criterion %s option value %d is outside 1..5", c.ID, opt.Value)
			}
		}
	}
	if !tpl.Thresholds.Descending() {
		return domain.NewValidationError("condition thresholds must be strictly decreasing")
	}
	return nil
}

func (s *templateService) CreateTemplate(ctx context.Context, tpl *domain.AssessmentTemplate) error {
	if err := validateTemplate(tpl); err != nil {
		return err
	}
	if err := s.templateRepo.Create(ctx, tpl); err != nil {
		return err
	}
	s.logTemplateEvent(ctx, tpl)
	return nil
}

func (s *templateService) UpdateTemplate(ctx context.Context, id int32, tpl *domain.AssessmentTemplate) (*domain.AssessmentTemplate, error) {
	if err := validateTemplate(tpl); err != nil {
		return nil, err
	}
	base, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if base.Superseded {
		return nil, domain.NewConflictError("template %d is superseded by a newer version", id)
	}

	referenced, err := s.templateRepo.HasAssessments(ctx, id)
	if err != nil {
		return nil, err
	}
	if !referenced {
		// Nothing points at this template yet, so it is still a draft and
		// may be edited in place without a version bump.
		tpl.ID = id
		tpl.Version = base.Version
		if err := s.templateRepo.Update(ctx, tpl); err != nil {
			return nil, err
		}
		return tpl, nil
	}

	if err := s.templateRepo.CreateVersion(ctx, id, tpl); err != nil {
		return nil, err
	}
	s.logTemplateEvent(ctx, tpl)
	return tpl, nil
}

func (s *templateService) GetTemplate(ctx context.Context, id int32) (*domain.AssessmentTemplate, error) {
	return s.templateRepo.GetByID(ctx, id)
}

func (s *templateService) ListTemplates(ctx context.Context, category string) ([]domain.AssessmentTemplate, error) {
	return s.templateRepo.ListByCategory(ctx, category)
}

// Template writes are not part of a multi-entity unit, so the log append
// happens after the insert. A failed append is logged and swallowed rather
// than failing the creation.
func (s *templateService) logTemplateEvent(ctx context.Context, tpl *domain.AssessmentTemplate) {
	payload, err := domain.EncodePayload(tpl)
	if err != nil {
		logger.Error("Failed to encode template payload", "template_id", tpl.ID, "error", err)
		return
	}
	entry := &domain.EventLogEntry{
		Action:     domain.ActionTemplateCreated,
		EntityType: domain.EntityTemplate,
		EntityID:   formatID(tpl.ID),
		UserID:     tpl.CreatedBy,
		Payload:    payload,
	}
	if err := s.eventRepo.Append(ctx, entry); err != nil {
		logger.Error("Failed to append template log entry", "template_id", tpl.ID, "error", err)
	}
}
