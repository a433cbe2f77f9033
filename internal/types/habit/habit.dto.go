package habit

type CreateHabitRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Type     string `json:"type"`
}

type UpdateTypeRequest struct {
	Type string `json:"type"`
}

type SetCheckedRequest struct {
	IsChecked bool `json:"isChecked"`
}
