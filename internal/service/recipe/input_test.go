package recipe

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
)

func TestCreateRecipeInput_Validate_OK(t *testing.T) {
	t.Parallel()

	input := CreateRecipeInput{Form: validForm()}
	if err := input.Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestCreateRecipeInput_Validate_ImageNeedsContentType(t *testing.T) {
	t.Parallel()

	input := CreateRecipeInput{
		Form:  validForm(),
		Image: &ImageUpload{Body: strings.NewReader("jpeg-bytes")},
	}

	err := input.Validate()
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRecipeInput_Validate_IncompleteFormCollectsAllFields(t *testing.T) {
	t.Parallel()

	form := validForm()
	form.Title = ""
	form.Ingredients = nil
	form.Steps = nil

	err := CreateRecipeInput{Form: form}.Validate()

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	if len(ve.Errors) < 3 {
		t.Errorf("expected all field errors collected, got %+v", ve.Errors)
	}
}

func TestUpdateRecipeInput_Validate_RequiresID(t *testing.T) {
	t.Parallel()

	input := UpdateRecipeInput{Form: validForm()}

	err := input.Validate()
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for nil id, got %v", err)
	}

	input.RecipeID = uuid.New()
	if err := input.Validate(); err != nil {
		t.Fatalf("expected valid input with id set, got %v", err)
	}
}
