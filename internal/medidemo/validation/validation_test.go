package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "weight_kg: must be a finite number greater than 0", New("weight_kg", "must be a finite number greater than %d", 0).Error())
	assert.Equal(t, "no symptoms selected", (&Error{Reason: "no symptoms selected"}).Error())
}

func TestIsAndAs(t *testing.T) {
	err := fmt.Errorf("evaluate: %w", New("age", "out of range"))

	assert.True(t, errors.Is(err, ErrInvalid))
	ve, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "age", ve.Field)

	_, ok = As(errors.New("boom"))
	assert.False(t, ok)
	assert.False(t, errors.Is(errors.New("boom"), ErrInvalid))
}
