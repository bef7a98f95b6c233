package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/config"
	"github.com/soleofit/soleo_go_server/internal/database"
	"github.com/soleofit/soleo_go_server/internal/model"
)

var withCatalog = flag.Bool("with-catalog", true, "Seed the starter muscle groups and exercises")

// Seeds the data the app cannot run without: the SEMILLA trial plan every
// new client lands on, plus a starter routine and catalog. Safe to run
// repeatedly, existing rows are left alone.
func main() {
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	routineID, err := seedRoutine(db)
	if err != nil {
		log.Fatalf("Failed to seed routine: %v", err)
	}

	if err := seedTrialPlan(db, routineID); err != nil {
		log.Fatalf("Failed to seed trial plan: %v", err)
	}

	if *withCatalog {
		if err := seedCatalog(db, routineID); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	log.Println("Seed complete")
}

func seedRoutine(db *gorm.DB) (int64, error) {
	var routine model.Routine
	err := db.Where("name = ?", "Rutina de Volumen").First(&routine).Error
	if err == nil {
		log.Printf("Routine %q already exists (id=%d)", routine.Name, routine.ID)
		return routine.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	routine = model.Routine{
		Name:   "Rutina de Volumen",
		Status: model.RoutineStatusActive,
	}
	if err := db.Create(&routine).Error; err != nil {
		return 0, err
	}
	log.Printf("Created routine %q (id=%d)", routine.Name, routine.ID)
	return routine.ID, nil
}

func seedTrialPlan(db *gorm.DB, routineID int64) error {
	var plan model.Plan
	err := db.Where("is_trial = ?", true).First(&plan).Error
	if err == nil {
		log.Printf("Trial plan %q already exists (id=%d)", plan.Name, plan.ID)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	plan = model.Plan{
		Name:         "SEMILLA",
		Description:  "Plan de prueba para nuevos miembros",
		Price:        0,
		DurationDays: 365,
		IsTrial:      true,
		IsDefault:    true,
		Status:       model.PlanStatusActive,
		RoutineID:    &routineID,
	}
	if err := db.Create(&plan).Error; err != nil {
		return err
	}
	log.Printf("Created trial plan %q (id=%d)", plan.Name, plan.ID)
	return nil
}

func seedCatalog(db *gorm.DB, routineID int64) error {
	groups := []struct {
		Name      string
		Exercises []model.Exercise
	}{
		{"Pecho", []model.Exercise{
			{Name: "Press de banca", Description: "Press con barra en banco plano", Series: 4, Repetitions: 10},
			{Name: "Aperturas con mancuernas", Description: "Aperturas en banco plano", Series: 3, Repetitions: 12},
		}},
		{"Espalda", []model.Exercise{
			{Name: "Dominadas", Description: "Dominadas con agarre prono", Series: 4, Repetitions: 8},
			{Name: "Remo con barra", Description: "Remo inclinado con barra", Series: 4, Repetitions: 10},
		}},
		{"Piernas", []model.Exercise{
			{Name: "Sentadilla", Description: "Sentadilla libre con barra", Series: 4, Repetitions: 10},
			{Name: "Peso muerto", Description: "Peso muerto convencional", Series: 4, Repetitions: 8},
		}},
	}

	for position, entry := range groups {
		name := entry.Name
		exercises := entry.Exercises

		var group model.MuscleGroup
		err := db.Where("name = ?", name).First(&group).Error
		if err == nil {
			log.Printf("Muscle group %q already exists, skipping", name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		group = model.MuscleGroup{Name: name}
		if err := db.Create(&group).Error; err != nil {
			return err
		}

		for i := range exercises {
			exercises[i].MuscleGroupID = group.ID
			if err := db.Create(&exercises[i]).Error; err != nil {
				return err
			}
		}

		section := model.RoutineSection{
			RoutineID:     routineID,
			MuscleGroupID: group.ID,
			Position:      position,
		}
		if err := db.Create(&section).Error; err != nil {
			return err
		}
		if err := db.Model(&section).Association("Exercises").Append(&exercises); err != nil {
			return err
		}

		log.Printf("Seeded muscle group %q with %d exercises", name, len(exercises))
	}

	return nil
}
