package model

type Student struct {
	ID          string `json:"id" validate:"omitempty"`
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Age         int    `json:"age" validate:"min=0,max=150"`
	ParentName  string `json:"parentName" validate:"omitempty,max=50"`
	ParentPhone string `json:"parentPhone" validate:"omitempty,max=20"`
	Status      string `json:"status" validate:"required,oneof=active inactive"`
	CreateTime  string `json:"createTime" validate:"omitempty"`
}

func (s Student) EntityID() string { return s.ID }

type StudentUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Age         *int    `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
	ParentName  *string `json:"parentName,omitempty" validate:"omitempty,max=50"`
	ParentPhone *string `json:"parentPhone,omitempty" validate:"omitempty,max=20"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}
