package validator_test

import (
	"testing"

	"market/internal/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCartValidator_ValidateAdd(t *testing.T) {
	v := validator.NewCartValidator()
	tid := uuid.NewString()

	assert.NoError(t, v.ValidateAdd(tid, 1))
	assert.NoError(t, v.ValidateAdd(tid, 100))

	assert.Error(t, v.ValidateAdd(tid, 0))
	assert.Error(t, v.ValidateAdd(tid, -3))
	assert.Error(t, v.ValidateAdd(tid, 101))
}

func TestCartValidator_ValidateTemplateID(t *testing.T) {
	v := validator.NewCartValidator()

	assert.NoError(t, v.ValidateTemplateID(uuid.NewString()))

	assert.Error(t, v.ValidateTemplateID(""))
	assert.Error(t, v.ValidateTemplateID("   "))
	assert.Error(t, v.ValidateTemplateID("not-a-uuid"))
	assert.ErrorIs(t, v.ValidateTemplateID("12345"), validator.ErrInvalidTemplateID)
}

func TestCartValidator_ValidateUpdate(t *testing.T) {
	v := validator.NewCartValidator()
	tid := uuid.NewString()

	assert.NoError(t, v.ValidateUpdate(tid, 50))
	assert.Error(t, v.ValidateUpdate(tid, 0))
	assert.Error(t, v.ValidateUpdate(tid, 101))
	assert.Error(t, v.ValidateUpdate("bad", 10))
}
