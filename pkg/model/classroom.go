package model

type Classroom struct {
	ID         string `json:"id" validate:"omitempty"`
	Name       string `json:"name" validate:"required,min=1,max=50"`
	Capacity   int    `json:"capacity" validate:"min=1,max=500"`
	Equipment  string `json:"equipment" validate:"omitempty,max=200"`
	Status     string `json:"status" validate:"required,oneof=available occupied maintenance"`
	CreateTime string `json:"createTime" validate:"omitempty"`
}

func (c Classroom) EntityID() string { return c.ID }

type ClassroomUpdate struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Capacity  *int    `json:"capacity,omitempty" validate:"omitempty,min=1,max=500"`
	Equipment *string `json:"equipment,omitempty" validate:"omitempty,max=200"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=available occupied maintenance"`
}
