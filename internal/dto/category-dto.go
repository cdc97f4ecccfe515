package dto

type CreateCategoryDTO struct {
	Name     string  `json:"name" validate:"required"`
	ParentID *uint64 `json:"parent_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateCategoryDTO struct {
	Name     *string `json:"name,omitempty"      validate:"omitempty,min=1"`
	ParentID *uint64 `json:"parent_id,omitempty" validate:"omitempty,gt=0"`
}

type CategoryDTO struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	ParentID  *uint64 `json:"parent_id,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// TreeNodeDTO — узел объединённого дерева категорий и оборудования.
// ParentID либо nil (корневая категория), либо id другого узла,
// либо сентинел "equipment" для оборудования без категории.
type TreeNodeDTO struct {
	ID         string  `json:"_id"`
	Name       string  `json:"name"`
	ParentID   *string `json:"parentId"`
	CategoryID *string `json:"categoryId,omitempty"`
}
