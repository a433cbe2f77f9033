package user

type RegisterRequest struct {
	Name string `json:"name"`
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
}
