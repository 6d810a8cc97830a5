package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stablehand/internal/domain"
)

func TestDayHeading(t *testing.T) {
	// 2024-03-10 was a Sunday.
	assert.Equal(t, "SUNDAY, 10 MARCH", DayHeading(domain.Date("2024-03-10")))
	assert.Equal(t, "SATURDAY, 9 MARCH", DayHeading(domain.Date("2024-03-09")))
}

func TestChipLabel(t *testing.T) {
	assert.Equal(t, "SUN 10", ChipLabel(domain.Date("2024-03-10")))
	assert.Equal(t, "MON 11", ChipLabel(domain.Date("2024-03-11")))
}
