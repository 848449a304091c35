package taxonomy

// CreateCategoryRequest for POST /categories (staff only)
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"omitempty,max=300"`
}

// CreateTagRequest for POST /tags (staff only)
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=2,max=30"`
}
