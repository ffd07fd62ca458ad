package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeProgressBar(t *testing.T) {
	assert.Equal(t, "▱▱▱▱▱▱▱▱▱▱", MakeProgressBar(0))
	assert.Equal(t, "▰▰▰▰▰▱▱▱▱▱", MakeProgressBar(6))
	assert.Equal(t, "▰▰▰▰▰▰▰▰▰▰", MakeProgressBar(12))
	// Out-of-range values are clamped, not rendered past the bar.
	assert.Equal(t, "▰▰▰▰▰▰▰▰▰▰", MakeProgressBar(99))
	assert.Equal(t, "▱▱▱▱▱▱▱▱▱▱", MakeProgressBar(-1))
}

func TestRandomPickers(t *testing.T) {
	assert.Contains(t, recipes, RandomRecipe())
	assert.Contains(t, hydrationTips, RandomHydrationTip())
}
