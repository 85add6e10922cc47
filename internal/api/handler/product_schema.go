package handler

import "time"

// --- Request / Response types ---

type createProductRequest struct {
	Name        string   `json:"name"        validate:"notblank"`
	Description string   `json:"description" validate:"notblank"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
}

// updateProductRequest distinguishes an omitted field (nil) from an explicit
// zero value; omitted fields keep their stored value.
type updateProductRequest struct {
	Name        *string  `json:"name,omitempty"        validate:"omitempty,notblank"`
	Description *string  `json:"description,omitempty" validate:"omitempty,notblank"`
	Price       *float64 `json:"price,omitempty"       validate:"omitempty,gte=0"`
}

type listProductsQuery struct {
	Page int    `query:"page" validate:"min=0,max=1000000"`
	Size int    `query:"size" validate:"min=1,max=100"`
	Sort string `query:"sort"`
}

type searchProductsQuery struct {
	SearchTerm string `query:"searchTerm" validate:"required"`
	Page       int    `query:"page"       validate:"min=0,max=1000000"`
	Size       int    `query:"size"       validate:"min=1,max=100"`
}

type productResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	CreationDate time.Time `json:"creationDate"`
	UpdateDate   time.Time `json:"updateDate"`
}

type productPageResponse struct {
	Content       []productResponse `json:"content"`
	Number        int               `json:"number"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
	First         bool              `json:"first"`
	Last          bool              `json:"last"`
}

type loginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expiresAt"`
}
