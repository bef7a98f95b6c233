package repository

import (
	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(plan *model.Plan) error {
	return r.db.Create(plan).Error
}

func (r *PlanRepository) GetByID(id int64) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.Preload("Routine").Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetByIDWithFullRoutine loads the plan with its routine, sections, muscle
// groups and exercises.
func (r *PlanRepository) GetByIDWithFullRoutine(id int64) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.
		Preload("Routine").
		Preload("Routine.Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("routine_sections.position")
		}).
		Preload("Routine.Sections.MuscleGroup").
		Preload("Routine.Sections.Exercises").
		Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) GetByName(name string) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.Where("name = ?", name).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetTrial returns the active trial plan assigned at registration.
func (r *PlanRepository) GetTrial() (*model.Plan, error) {
	var plan model.Plan
	err := r.db.Where("is_trial = ? AND status = ?", true, model.PlanStatusActive).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) List() ([]model.Plan, error) {
	var plans []model.Plan
	err := r.db.Preload("Routine").Order("price").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) Update(plan *model.Plan) error {
	return r.db.Save(plan).Error
}

func (r *PlanRepository) Delete(id int64) error {
	return r.db.Delete(&model.Plan{}, id).Error
}
