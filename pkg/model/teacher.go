package model

type Teacher struct {
	ID         string  `json:"id" validate:"omitempty"`
	Name       string  `json:"name" validate:"required,min=1,max=50"`
	Phone      string  `json:"phone" validate:"omitempty,max=20"`
	Level      string  `json:"level" validate:"required,oneof=junior intermediate senior"`
	HourlyRate float64 `json:"hourlyRate" validate:"min=0"`
	GroupRate  float64 `json:"groupRate" validate:"min=0"`
	Status     string  `json:"status" validate:"required,oneof=active inactive"`
	CreateTime string  `json:"createTime" validate:"omitempty"`
}

func (t Teacher) EntityID() string { return t.ID }

type TeacherUpdate struct {
	Name       *string  `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Phone      *string  `json:"phone,omitempty" validate:"omitempty,max=20"`
	Level      *string  `json:"level,omitempty" validate:"omitempty,oneof=junior intermediate senior"`
	HourlyRate *float64 `json:"hourlyRate,omitempty" validate:"omitempty,min=0"`
	GroupRate  *float64 `json:"groupRate,omitempty" validate:"omitempty,min=0"`
	Status     *string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}
