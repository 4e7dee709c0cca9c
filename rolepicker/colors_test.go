package rolepicker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorValueKnownName(t *testing.T) {
	value, known := ColorValue("gold", 0)
	assert.True(t, known)
	assert.Equal(t, 0xf1c40f, value)
}

func TestColorValueUnknownNameFallsBack(t *testing.T) {
	value, known := ColorValue("chartreuse", 42)
	assert.False(t, known)
	assert.Equal(t, 42, value)

	value, known = ColorValue("", 42)
	assert.False(t, known)
	assert.Equal(t, 42, value)
}

func TestColorNamesSortedAndComplete(t *testing.T) {
	names := ColorNames()
	assert.Len(t, names, len(colorValues))

	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestRandomColorIsKnown(t *testing.T) {
	for i := 0; i < 50; i++ {
		value := RandomColor()

		found := false
		for _, known := range colorValues {
			if known == value {
				found = true
				break
			}
		}
		assert.True(t, found)
	}
}
