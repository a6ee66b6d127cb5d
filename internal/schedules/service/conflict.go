package service

import (
	"slices"

	"coursebook/pkg/config"
	"coursebook/pkg/model"
)

// Conflict dimensions, in priority order. A candidate overlapping an
// existing lesson on several dimensions reports only the highest one.
const (
	DimensionTeacher   = "teacher"
	DimensionClassroom = "classroom"
	DimensionStudent   = "student"
)

// ConflictCheck is the detector verdict. With points at the first existing
// schedule that collides.
type ConflictCheck struct {
	HasConflict bool            `json:"hasConflict"`
	Dimension   string          `json:"conflictType,omitempty"`
	With        *model.Schedule `json:"conflictSchedule,omitempty"`
}

// CheckConflict scans every existing schedule once and reports whether the
// candidate double-books a teacher, a classroom or any shared student.
// Skipped: the candidate's own id (so updates never conflict with
// themselves), other dates, and cancelled lessons.
func CheckConflict(candidate *model.Schedule, existing []model.Schedule) ConflictCheck {
	for i := range existing {
		other := &existing[i]

		if candidate.ID != "" && other.ID == candidate.ID {
			continue
		}
		if other.Date != candidate.Date {
			continue
		}
		if other.Status == config.StatusCancelled {
			continue
		}
		if !overlaps(candidate.StartTime, candidate.EndTime, other.StartTime, other.EndTime) {
			continue
		}

		if candidate.TeacherID != "" && other.TeacherID == candidate.TeacherID {
			return ConflictCheck{HasConflict: true, Dimension: DimensionTeacher, With: other}
		}
		if candidate.ClassroomID != "" && other.ClassroomID == candidate.ClassroomID {
			return ConflictCheck{HasConflict: true, Dimension: DimensionClassroom, With: other}
		}
		for _, studentID := range candidate.Students {
			if slices.Contains(other.Students, studentID) {
				return ConflictCheck{HasConflict: true, Dimension: DimensionStudent, With: other}
			}
		}
	}
	return ConflictCheck{}
}

// overlaps applies half-open interval semantics to zero-padded HH:MM
// strings: [s1,e1) and [s2,e2) overlap iff s1 < e2 and s2 < e1. Back-to-back
// lessons sharing a boundary do not overlap.
func overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}
