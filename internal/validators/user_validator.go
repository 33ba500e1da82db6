package validators

type UserCreateRequest struct {
	Role            string `json:"role" validate:"required,role"`
	FirstName       string `json:"first_name" validate:"required,min=1,max=100"`
	LastName        string `json:"last_name" validate:"required,min=1,max=100"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phone_number" validate:"required,phone_number"`
	Password        string `json:"password" validate:"required,strong_password"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

type UserUpdateRequest struct {
	Role            string `json:"role" validate:"omitempty,role"`
	FirstName       string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName        string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email           string `json:"email" validate:"omitempty,email"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,phone_number"`
	Password        string `json:"password" validate:"omitempty,strong_password"`
	PasswordConfirm string `json:"password_confirm" validate:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func ValidateUserCreate(req *UserCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateUserUpdate(req *UserUpdateRequest) ValidationErrors {
	errors := ValidateStruct(req)

	// Password changes require a matching confirmation alongside.
	if req.Password != "" || req.PasswordConfirm != "" {
		if req.Password == "" {
			errors = append(errors, ValidationError{
				Field:   "password",
				Message: "Password is required when providing password confirmation",
			})
		} else if req.PasswordConfirm == "" {
			errors = append(errors, ValidationError{
				Field:   "password_confirm",
				Message: "Password confirmation is required when updating password",
			})
		} else if req.Password != req.PasswordConfirm {
			errors = append(errors, ValidationError{
				Field:   "password_confirm",
				Message: "Password and password confirmation do not match",
			})
		}
	}

	return errors
}

func ValidateLogin(req *LoginRequest) ValidationErrors {
	return ValidateStruct(req)
}
