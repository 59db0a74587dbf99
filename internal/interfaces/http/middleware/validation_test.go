package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bundlebuilder/backend/internal/interfaces/http/dto"
)

type validationProbe struct {
	Title       string  `json:"title" binding:"required,max=200"`
	MinProducts int     `json:"min_products" binding:"gte=2"`
	ImageURL    string  `json:"image_url" binding:"omitempty,url"`
	Discount    float64 `json:"discount" binding:"lte=100"`
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(validationProbe{
		Title:       "",
		MinProducts: 1,
		ImageURL:    "not a url",
		Discount:    150,
	})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-789")

	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-789", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 4)

	byField := make(map[string]string, len(resp.Error.Details))
	for _, d := range resp.Error.Details {
		byField[d.Field] = d.Message
	}
	// Field names come from JSON tags, not Go struct fields
	assert.Equal(t, "This field is required", byField["title"])
	assert.Equal(t, "Must be greater than or equal to 2", byField["min_products"])
	assert.Equal(t, "Invalid URL format", byField["image_url"])
	assert.Equal(t, "Must be less than or equal to 100", byField["discount"])
}

func TestFormatValidationErrorsNonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-1")

	assert.False(t, resp.Success)
	assert.Empty(t, resp.Error.Details)
}
