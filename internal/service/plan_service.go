package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/repository"
)

var (
	ErrPlanNameExists = errors.New("ya existe un plan con ese nombre")
	ErrPlanInUse      = errors.New("el plan tiene clientes activos y no puede eliminarse")
)

type PlanService struct {
	planRepo *repository.PlanRepository
	userRepo *repository.UserRepository
}

func NewPlanService(planRepo *repository.PlanRepository, userRepo *repository.UserRepository) *PlanService {
	return &PlanService{
		planRepo: planRepo,
		userRepo: userRepo,
	}
}

func (s *PlanService) Create(req *dto.CreatePlanRequest) (*model.Plan, error) {
	if _, err := s.planRepo.GetByName(req.Name); err == nil {
		return nil, ErrPlanNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.PlanStatusActive
	}

	plan := &model.Plan{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		IsTrial:      req.IsTrial,
		IsDefault:    req.IsDefault,
		Status:       status,
		RoutineID:    req.RoutineID,
	}
	if err := s.planRepo.Create(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) Get(id int64) (*model.Plan, error) {
	plan, err := s.planRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// GetWithFullRoutine loads the plan with its routine, sections, muscle
// groups and exercises in section order.
func (s *PlanService) GetWithFullRoutine(id int64) (*model.Plan, error) {
	plan, err := s.planRepo.GetByIDWithFullRoutine(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) List() ([]model.Plan, error) {
	return s.planRepo.List()
}

func (s *PlanService) Update(id int64, req *dto.UpdatePlanRequest) (*model.Plan, error) {
	plan, err := s.planRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != plan.Name {
		if _, err := s.planRepo.GetByName(*req.Name); err == nil {
			return nil, ErrPlanNameExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.DurationDays != nil {
		plan.DurationDays = *req.DurationDays
	}
	if req.Status != nil {
		plan.Status = *req.Status
	}
	if req.RoutineID != nil {
		plan.RoutineID = req.RoutineID
	}

	if err := s.planRepo.Update(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete removes a plan unless a client still holds it as current. History
// rows referencing the plan stay valid, plan identity is stable.
func (s *PlanService) Delete(id int64) error {
	if _, err := s.planRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	holders, err := s.userRepo.CountByCurrentPlan(id)
	if err != nil {
		return err
	}
	if holders > 0 {
		return ErrPlanInUse
	}

	return s.planRepo.Delete(id)
}
