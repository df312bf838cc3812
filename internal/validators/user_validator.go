package validators

type RegisterRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=Driver Rider"`
}

type SubmitRatingRequest struct {
	RaterID  string `json:"raterId" validate:"required"`
	Category string `json:"category" validate:"required,oneof=driver rider"`
	Score    int    `json:"rating" validate:"required,min=1,max=5"`
	Review   string `json:"review" validate:"omitempty,max=200"`
}

func ValidateRegisterRequest(req *RegisterRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateSubmitRatingRequest(req *SubmitRatingRequest) ValidationErrors {
	return ValidateStruct(req)
}
