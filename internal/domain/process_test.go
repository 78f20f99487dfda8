package domain_test

import (
	"testing"

	"github.com/doeshing/ivyrun/internal/domain"
)

func TestProcessState_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from domain.ProcessState
		to   domain.ProcessState
		want bool
	}{
		{"unstarted to starting", domain.ProcessUnstarted, domain.ProcessStarting, true},
		{"unstarted to running", domain.ProcessUnstarted, domain.ProcessRunning, false},
		{"starting to running", domain.ProcessStarting, domain.ProcessRunning, true},
		{"starting to failed", domain.ProcessStarting, domain.ProcessFailed, true},
		{"starting to terminated", domain.ProcessStarting, domain.ProcessTerminated, true},
		{"running to terminated", domain.ProcessRunning, domain.ProcessTerminated, true},
		{"running to failed", domain.ProcessRunning, domain.ProcessFailed, true},
		{"terminated is terminal", domain.ProcessTerminated, domain.ProcessRunning, false},
		{"failed is terminal", domain.ProcessFailed, domain.ProcessTerminated, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Fatalf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestProcessState_Terminal(t *testing.T) {
	for _, s := range []domain.ProcessState{domain.ProcessFailed, domain.ProcessTerminated} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []domain.ProcessState{domain.ProcessUnstarted, domain.ProcessStarting, domain.ProcessRunning} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}

func TestLaunchSpec_Validate(t *testing.T) {
	spec := domain.LaunchSpec{Command: "python", LogFile: "extractor.log"}
	if err := spec.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := (domain.LaunchSpec{LogFile: "x.log"}).Validate(); err == nil {
		t.Fatal("expected error for missing command")
	}
	if err := (domain.LaunchSpec{Command: "python"}).Validate(); err == nil {
		t.Fatal("expected error for missing log file")
	}
}
