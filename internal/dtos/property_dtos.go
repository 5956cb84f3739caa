package dtos

type CreatePropertyRequest struct {
	Name    string `json:"name" validate:"required,min=1"`
	Address string `json:"address" validate:"required,min=1"`
	City    string `json:"city" validate:"required,min=1"`
	State   string `json:"state" validate:"required,min=1"`
	ZipCode string `json:"zip_code" validate:"required,min=1"`
}

type UpdatePropertyRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Address *string `json:"address,omitempty" validate:"omitempty,min=1"`
	City    *string `json:"city,omitempty" validate:"omitempty,min=1"`
	State   *string `json:"state,omitempty" validate:"omitempty,min=1"`
	ZipCode *string `json:"zip_code,omitempty" validate:"omitempty,min=1"`
}
