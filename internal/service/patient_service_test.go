package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
)

func TestPatientService_CreateAndGet(t *testing.T) {
	repo := NewMockPatientRepository()
	svc := NewPatientService(repo)

	patient, err := svc.Create(context.Background(), &domain.CreatePatientRequest{
		Name:     "Marta Kovar",
		Timezone: "Europe/Prague",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if patient.ID == uuid.Nil {
		t.Fatal("Create() returned patient without an ID")
	}

	got, err := svc.GetByID(context.Background(), patient.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Marta Kovar" || got.Timezone != "Europe/Prague" {
		t.Errorf("GetByID() = %q %q, want Marta Kovar Europe/Prague", got.Name, got.Timezone)
	}
}

func TestPatientService_GetByID_NotFound(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())
	if _, err := svc.GetByID(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}
