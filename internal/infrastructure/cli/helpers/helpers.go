// Package helpers renders CLI output in a plain, ASCII-only format.
package helpers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/ivyrun/internal/domain"
)

// RenderRunReport prints the outcome of one supervised run.
func RenderRunReport(report *domain.RunReport, err error) {
	if err != nil {
		fmt.Printf("Run failed: %v\n", err)
	}
	if report.HealthOutcome != "" {
		fmt.Printf("Extractor health: %s\n", report.HealthOutcome)
	}
	if report.ShutdownAttempted {
		fmt.Printf("Extractor shutdown: %s\n", report.ShutdownOutcome)
	}
	if err == nil {
		fmt.Println("Sync completed successfully.")
	}
	fmt.Printf("Exit code: %d\n", report.ExitCode)
}

// RenderDoctorReport prints diagnostic checks with status markers.
func RenderDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %-14s %s\n", statusMarker(check.Status), check.Name, check.Details)
	}
}

func statusMarker(status domain.HealthStatus) string {
	switch status {
	case domain.HealthOK:
		return "ok"
	case domain.HealthWarn:
		return "warn"
	default:
		return "fail"
	}
}

// RenderRunRecords prints history entries, newest first.
func RenderRunRecords(out io.Writer, records []domain.RunRecord) {
	for _, rec := range records {
		fmt.Fprintln(out, FormatRunRecord(rec))
	}
}

// FormatRunRecord renders one history row.
func FormatRunRecord(rec domain.RunRecord) string {
	status := "ok"
	if !rec.Success {
		status = fmt.Sprintf("exit %d", rec.ExitCode)
	}
	parts := []string{
		humanize.Time(rec.StartedAt),
		fmt.Sprintf("duration %s", (time.Duration(rec.DurationMS) * time.Millisecond).Round(time.Millisecond)),
		status,
		fmt.Sprintf("health=%s", rec.HealthOutcome),
		fmt.Sprintf("shutdown=%s", rec.ShutdownOutcome),
	}
	return strings.Join(parts, "  ")
}
