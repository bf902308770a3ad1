package recipe

import (
	"io"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
)

// ImageUpload carries the bytes of a new recipe image.
type ImageUpload struct {
	ContentType string
	Body        io.Reader
}

// CreateRecipeInput holds the parameters for creating a recipe.
// Image, when set, is uploaded before the row is inserted and its durable
// URL replaces whatever Form.ImageURL held.
type CreateRecipeInput struct {
	Form  domain.RecipeForm
	Image *ImageUpload
}

// Validate checks all fields and collects all errors.
func (i CreateRecipeInput) Validate() error {
	if err := i.Form.Validate(); err != nil {
		return err
	}

	// A local file URI only makes sense alongside the actual bytes.
	if i.Image == nil && i.Form.ImageURL != nil && domain.IsLocalImageURL(*i.Form.ImageURL) {
		return domain.NewValidationError("imageUrl", "local image reference requires an image upload")
	}
	if i.Image != nil && i.Image.ContentType == "" {
		return domain.NewValidationError("image", "content type required")
	}

	return nil
}

// UpdateRecipeInput holds the parameters for updating a recipe.
type UpdateRecipeInput struct {
	RecipeID uuid.UUID
	Form     domain.RecipeForm
	Image    *ImageUpload
}

// Validate checks all fields and collects all errors.
func (i UpdateRecipeInput) Validate() error {
	if i.RecipeID == uuid.Nil {
		return domain.NewValidationError("recipe_id", "required")
	}
	return CreateRecipeInput{Form: i.Form, Image: i.Image}.Validate()
}
