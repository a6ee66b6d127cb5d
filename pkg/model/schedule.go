package model

// Schedule is a booked lesson. It is the one record kind with cross-record
// invariants: two active schedules on the same date with overlapping time
// ranges must not share a teacher, a classroom, or any student.
type Schedule struct {
	ID             string   `json:"id" validate:"omitempty"`
	CourseTypeID   string   `json:"courseTypeId" validate:"required"`
	CourseTypeName string   `json:"courseTypeName,omitempty" validate:"omitempty"`
	TeacherID      string   `json:"teacherId" validate:"required"`
	TeacherName    string   `json:"teacherName,omitempty" validate:"omitempty"`
	ClassroomID    string   `json:"classroomId" validate:"required"`
	ClassroomName  string   `json:"classroomName,omitempty" validate:"omitempty"`
	Date           string   `json:"date" validate:"required,course_date"`
	StartTime      string   `json:"startTime" validate:"required,course_time"`
	EndTime        string   `json:"endTime" validate:"required,course_time"`
	Students       []string `json:"students" validate:"required,min=1,dive,required"`
	StudentNames   []string `json:"studentNames,omitempty" validate:"omitempty"`
	Status         string   `json:"status" validate:"required,oneof=scheduled completed cancelled"`
	Fee            float64  `json:"fee" validate:"min=0"`
	CreateTime     string   `json:"createTime" validate:"omitempty"`
}

func (s Schedule) EntityID() string { return s.ID }

// ScheduleUpdate carries a partial schedule mutation. Nil fields keep the
// existing value.
type ScheduleUpdate struct {
	CourseTypeID   *string   `json:"courseTypeId,omitempty" validate:"omitempty"`
	CourseTypeName *string   `json:"courseTypeName,omitempty" validate:"omitempty"`
	TeacherID      *string   `json:"teacherId,omitempty" validate:"omitempty"`
	TeacherName    *string   `json:"teacherName,omitempty" validate:"omitempty"`
	ClassroomID    *string   `json:"classroomId,omitempty" validate:"omitempty"`
	ClassroomName  *string   `json:"classroomName,omitempty" validate:"omitempty"`
	Date           *string   `json:"date,omitempty" validate:"omitempty,course_date"`
	StartTime      *string   `json:"startTime,omitempty" validate:"omitempty,course_time"`
	EndTime        *string   `json:"endTime,omitempty" validate:"omitempty,course_time"`
	Students       *[]string `json:"students,omitempty" validate:"omitempty,min=1,dive,required"`
	StudentNames   *[]string `json:"studentNames,omitempty" validate:"omitempty"`
	Status         *string   `json:"status,omitempty" validate:"omitempty,oneof=scheduled completed cancelled"`
	Fee            *float64  `json:"fee,omitempty" validate:"omitempty,min=0"`
}
