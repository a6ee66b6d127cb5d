package model

// Collection names. The primary tier persists each collection as
// "<name>.json" inside the user-chosen data directory; the fallback tier
// keys its rows by the same names.
const (
	CollectionTeachers    = "teachers"
	CollectionStudents    = "students"
	CollectionClassrooms  = "classrooms"
	CollectionCourseTypes = "courseTypes"
	CollectionSchedules   = "schedules"
	CollectionPayments    = "payments"
)

// Entity is implemented by every stored record type.
type Entity interface {
	EntityID() string
}
