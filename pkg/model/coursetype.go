package model

type CourseType struct {
	ID          string `json:"id" validate:"omitempty"`
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Type        string `json:"type" validate:"required,oneof=one-on-one group"`
	Duration    int    `json:"duration" validate:"min=5,max=480"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func (ct CourseType) EntityID() string { return ct.ID }

type CourseTypeUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Type        *string `json:"type,omitempty" validate:"omitempty,oneof=one-on-one group"`
	Duration    *int    `json:"duration,omitempty" validate:"omitempty,min=5,max=480"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}
