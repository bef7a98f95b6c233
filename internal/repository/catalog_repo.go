package repository

import (
	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
)

type MuscleGroupRepository struct {
	db *gorm.DB
}

func NewMuscleGroupRepository(db *gorm.DB) *MuscleGroupRepository {
	return &MuscleGroupRepository{db: db}
}

func (r *MuscleGroupRepository) Create(group *model.MuscleGroup) error {
	return r.db.Create(group).Error
}

func (r *MuscleGroupRepository) GetByID(id int64) (*model.MuscleGroup, error) {
	var group model.MuscleGroup
	err := r.db.Where("id = ?", id).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *MuscleGroupRepository) List() ([]model.MuscleGroup, error) {
	var groups []model.MuscleGroup
	err := r.db.Order("name").Find(&groups).Error
	return groups, err
}

func (r *MuscleGroupRepository) Update(group *model.MuscleGroup) error {
	return r.db.Save(group).Error
}

func (r *MuscleGroupRepository) Delete(id int64) error {
	return r.db.Delete(&model.MuscleGroup{}, id).Error
}

// CountExercises counts exercises referencing the group, to block deletion
// while in use.
func (r *MuscleGroupRepository) CountExercises(id int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Exercise{}).Where("muscle_group_id = ?", id).Count(&count).Error
	return count, err
}

type ExerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Create(exercise *model.Exercise) error {
	return r.db.Create(exercise).Error
}

func (r *ExerciseRepository) GetByID(id int64) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.db.Preload("MuscleGroup").Where("id = ?", id).First(&exercise).Error
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepository) List() ([]model.Exercise, error) {
	var exercises []model.Exercise
	err := r.db.Preload("MuscleGroup").Order("name").Find(&exercises).Error
	return exercises, err
}

func (r *ExerciseRepository) ListByMuscleGroup(muscleGroupID int64) ([]model.Exercise, error) {
	var exercises []model.Exercise
	err := r.db.Where("muscle_group_id = ?", muscleGroupID).Order("name").Find(&exercises).Error
	return exercises, err
}

func (r *ExerciseRepository) GetByIDs(ids []int64) ([]model.Exercise, error) {
	var exercises []model.Exercise
	err := r.db.Where("id IN ?", ids).Find(&exercises).Error
	return exercises, err
}

func (r *ExerciseRepository) Update(exercise *model.Exercise) error {
	return r.db.Save(exercise).Error
}

func (r *ExerciseRepository) Delete(id int64) error {
	return r.db.Delete(&model.Exercise{}, id).Error
}

type RoutineRepository struct {
	db *gorm.DB
}

func NewRoutineRepository(db *gorm.DB) *RoutineRepository {
	return &RoutineRepository{db: db}
}

func (r *RoutineRepository) Create(routine *model.Routine) error {
	return r.db.Create(routine).Error
}

func (r *RoutineRepository) GetByID(id int64) (*model.Routine, error) {
	var routine model.Routine
	err := r.db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("routine_sections.position")
		}).
		Preload("Sections.MuscleGroup").
		Preload("Sections.Exercises").
		Where("id = ?", id).First(&routine).Error
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

func (r *RoutineRepository) GetByName(name string) (*model.Routine, error) {
	var routine model.Routine
	err := r.db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("routine_sections.position")
		}).
		Preload("Sections.MuscleGroup").
		Preload("Sections.Exercises").
		Where("name = ?", name).First(&routine).Error
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

func (r *RoutineRepository) List() ([]model.Routine, error) {
	var routines []model.Routine
	err := r.db.Order("name").Find(&routines).Error
	return routines, err
}

func (r *RoutineRepository) Update(routine *model.Routine) error {
	return r.db.Save(routine).Error
}

// AddSection appends a muscle-group section with its exercises.
func (r *RoutineRepository) AddSection(section *model.RoutineSection, exercises []model.Exercise) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(section).Error; err != nil {
			return err
		}
		if len(exercises) == 0 {
			return nil
		}
		return tx.Model(section).Association("Exercises").Append(&exercises)
	})
}

// RemoveSection deletes the section for the given muscle group and its
// exercise links.
func (r *RoutineRepository) RemoveSection(routineID, muscleGroupID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var section model.RoutineSection
		err := tx.Where("routine_id = ? AND muscle_group_id = ?", routineID, muscleGroupID).
			First(&section).Error
		if err != nil {
			return err
		}
		if err := tx.Model(&section).Association("Exercises").Clear(); err != nil {
			return err
		}
		return tx.Delete(&section).Error
	})
}
