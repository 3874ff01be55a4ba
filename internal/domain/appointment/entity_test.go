package appointment

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLifecycleHappyPath(t *testing.T) {
	now := testNow
	ap := apAt(now.Add(48*time.Hour), StatusPending)

	if err := Confirm(ap, now); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if ap.Status != string(StatusConfirmed) || ap.ConfirmedAt == nil {
		t.Fatalf("after confirm: status=%s confirmedAt=%v", ap.Status, ap.ConfirmedAt)
	}

	if err := Start(ap, now); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := Complete(ap, now); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if ap.CompletedAt == nil {
		t.Fatal("CompletedAt not set")
	}
}

func TestCancelIsNotIdempotent(t *testing.T) {
	now := testNow
	ap := apAt(now.Add(48*time.Hour), StatusConfirmed)

	if err := Cancel(ap, "cliente desistiu", now); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	// cancelar de novo é InvalidTransition, nunca sucesso silencioso
	err := Cancel(ap, "de novo", now)
	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("second cancel: expected InvalidTransitionError, got %v", err)
	}
}

func TestCancelFromInProgressRejected(t *testing.T) {
	ap := apAt(testNow, StatusInProgress)
	if err := Cancel(ap, "", testNow); err == nil {
		t.Fatal("cancel from in_progress must fail")
	}
}

func TestRescheduleResetsStatusAndInterval(t *testing.T) {
	now := testNow
	oldStart := now.Add(48 * time.Hour)
	ap := apAt(oldStart, StatusConfirmed)
	ap.ConfirmedAt = &now

	newStart := now.Add(96 * time.Hour)
	if err := Reschedule(ap, newStart, "imprevisto", now); err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	if ap.Status != string(StatusPending) {
		t.Fatalf("status = %s, want pending", ap.Status)
	}
	if !ap.StartTime.Equal(newStart) {
		t.Fatalf("StartTime = %v, want %v", ap.StartTime, newStart)
	}
	if !ap.EndTime.Equal(newStart.Add(30 * time.Minute)) {
		t.Fatalf("EndTime = %v", ap.EndTime)
	}
	if ap.ConfirmedAt != nil {
		t.Fatal("ConfirmedAt must be reset")
	}
	if !strings.Contains(ap.Notes, "remarcado") || !strings.Contains(ap.Notes, "imprevisto") {
		t.Fatalf("notes missing reschedule trail: %q", ap.Notes)
	}
}

func TestRescheduleFromTerminalRejected(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled} {
		ap := apAt(testNow.Add(time.Hour), s)
		if err := Reschedule(ap, testNow.Add(2*time.Hour), "", testNow); err == nil {
			t.Fatalf("reschedule from %s must fail", s)
		}
	}
}

func TestNotesAreAppendedNeverOverwritten(t *testing.T) {
	now := testNow
	ap := apAt(now.Add(48*time.Hour), StatusPending)
	ap.Notes = "corte degradê"

	if err := Reschedule(ap, now.Add(72*time.Hour), "choveu", now); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if err := Cancel(ap, "viagem", now); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	for _, want := range []string{"corte degradê", "choveu", "viagem"} {
		if !strings.Contains(ap.Notes, want) {
			t.Errorf("notes lost %q: %q", want, ap.Notes)
		}
	}
}
