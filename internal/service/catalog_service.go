package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/repository"
)

var (
	ErrMuscleGroupNotFound = errors.New("grupo muscular no encontrado")
	ErrMuscleGroupInUse    = errors.New("el grupo muscular tiene ejercicios asociados")
	ErrExerciseNotFound    = errors.New("ejercicio no encontrado")
	ErrRoutineNotFound     = errors.New("rutina no encontrada")
	ErrRoutineNameExists   = errors.New("ya existe una rutina con ese nombre")
	ErrSectionNotFound     = errors.New("la rutina no tiene sección para ese grupo muscular")
	ErrUnknownExercises    = errors.New("algunos ejercicios no existen")
)

// CatalogService manages the exercise catalog: muscle groups, exercises and
// the routines built from them.
type CatalogService struct {
	muscleGroupRepo *repository.MuscleGroupRepository
	exerciseRepo    *repository.ExerciseRepository
	routineRepo     *repository.RoutineRepository
}

func NewCatalogService(
	muscleGroupRepo *repository.MuscleGroupRepository,
	exerciseRepo *repository.ExerciseRepository,
	routineRepo *repository.RoutineRepository,
) *CatalogService {
	return &CatalogService{
		muscleGroupRepo: muscleGroupRepo,
		exerciseRepo:    exerciseRepo,
		routineRepo:     routineRepo,
	}
}

func (s *CatalogService) CreateMuscleGroup(req *dto.CreateMuscleGroupRequest) (*model.MuscleGroup, error) {
	group := &model.MuscleGroup{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.muscleGroupRepo.Create(group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *CatalogService) GetMuscleGroup(id int64) (*model.MuscleGroup, error) {
	group, err := s.muscleGroupRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMuscleGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *CatalogService) ListMuscleGroups() ([]model.MuscleGroup, error) {
	return s.muscleGroupRepo.List()
}

func (s *CatalogService) UpdateMuscleGroup(id int64, req *dto.UpdateMuscleGroupRequest) (*model.MuscleGroup, error) {
	group, err := s.GetMuscleGroup(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}

	if err := s.muscleGroupRepo.Update(group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteMuscleGroup refuses while exercises still reference the group.
func (s *CatalogService) DeleteMuscleGroup(id int64) error {
	if _, err := s.GetMuscleGroup(id); err != nil {
		return err
	}

	count, err := s.muscleGroupRepo.CountExercises(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrMuscleGroupInUse
	}
	return s.muscleGroupRepo.Delete(id)
}

func (s *CatalogService) CreateExercise(req *dto.CreateExerciseRequest) (*model.Exercise, error) {
	if _, err := s.GetMuscleGroup(req.MuscleGroupID); err != nil {
		return nil, err
	}

	exercise := &model.Exercise{
		Name:          req.Name,
		Description:   req.Description,
		Series:        req.Series,
		Repetitions:   req.Repetitions,
		VideoURL:      req.VideoURL,
		ImageURL:      req.ImageURL,
		MuscleGroupID: req.MuscleGroupID,
	}
	if err := s.exerciseRepo.Create(exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *CatalogService) GetExercise(id int64) (*model.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// ListExercises returns the catalog, optionally narrowed to one muscle group.
func (s *CatalogService) ListExercises(muscleGroupID *int64) ([]model.Exercise, error) {
	if muscleGroupID != nil {
		return s.exerciseRepo.ListByMuscleGroup(*muscleGroupID)
	}
	return s.exerciseRepo.List()
}

func (s *CatalogService) UpdateExercise(id int64, req *dto.UpdateExerciseRequest) (*model.Exercise, error) {
	exercise, err := s.GetExercise(id)
	if err != nil {
		return nil, err
	}

	if req.MuscleGroupID != nil {
		if _, err := s.GetMuscleGroup(*req.MuscleGroupID); err != nil {
			return nil, err
		}
		exercise.MuscleGroupID = *req.MuscleGroupID
	}
	if req.Name != nil {
		exercise.Name = *req.Name
	}
	if req.Description != nil {
		exercise.Description = *req.Description
	}
	if req.Series != nil {
		exercise.Series = *req.Series
	}
	if req.Repetitions != nil {
		exercise.Repetitions = *req.Repetitions
	}
	if req.VideoURL != nil {
		exercise.VideoURL = *req.VideoURL
	}
	if req.ImageURL != nil {
		exercise.ImageURL = *req.ImageURL
	}

	if err := s.exerciseRepo.Update(exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *CatalogService) DeleteExercise(id int64) error {
	if _, err := s.GetExercise(id); err != nil {
		return err
	}
	return s.exerciseRepo.Delete(id)
}

func (s *CatalogService) CreateRoutine(name string) (*model.Routine, error) {
	if _, err := s.routineRepo.GetByName(name); err == nil {
		return nil, ErrRoutineNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	routine := &model.Routine{
		Name:   name,
		Status: model.RoutineStatusActive,
	}
	if err := s.routineRepo.Create(routine); err != nil {
		return nil, err
	}
	return routine, nil
}

func (s *CatalogService) GetRoutine(id int64) (*model.Routine, error) {
	routine, err := s.routineRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return routine, nil
}

func (s *CatalogService) ListRoutines() ([]model.Routine, error) {
	return s.routineRepo.List()
}

func (s *CatalogService) UpdateRoutineStatus(id int64, status string) (*model.Routine, error) {
	routine, err := s.GetRoutine(id)
	if err != nil {
		return nil, err
	}
	routine.Status = status
	if err := s.routineRepo.Update(routine); err != nil {
		return nil, err
	}
	return routine, nil
}

// AddRoutineSection appends a muscle-group section holding the given
// exercises. The section lands at the end of the routine.
func (s *CatalogService) AddRoutineSection(routineID int64, req *dto.AddRoutineSectionRequest) (*model.Routine, error) {
	routine, err := s.GetRoutine(routineID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetMuscleGroup(req.MuscleGroupID); err != nil {
		return nil, err
	}

	exercises, err := s.exerciseRepo.GetByIDs(req.ExerciseIDs)
	if err != nil {
		return nil, err
	}
	if len(exercises) != len(req.ExerciseIDs) {
		return nil, ErrUnknownExercises
	}

	section := &model.RoutineSection{
		RoutineID:     routineID,
		MuscleGroupID: req.MuscleGroupID,
		Position:      len(routine.Sections),
	}
	if err := s.routineRepo.AddSection(section, exercises); err != nil {
		return nil, err
	}

	return s.GetRoutine(routineID)
}

// RemoveRoutineSection drops the section for one muscle group.
func (s *CatalogService) RemoveRoutineSection(routineID, muscleGroupID int64) error {
	if _, err := s.GetRoutine(routineID); err != nil {
		return err
	}
	if err := s.routineRepo.RemoveSection(routineID, muscleGroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return err
	}
	return nil
}
