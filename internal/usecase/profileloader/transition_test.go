package profileloader

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPlan(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	cases := []struct {
		name    string
		prev    uuid.UUID
		next    uuid.UUID
		mounted bool
		want    Transition
	}{
		{"mount with user", uuid.Nil, a, false, Transition{StartNew: true}},
		{"mount without user", uuid.Nil, uuid.Nil, false, Transition{}},
		{"same user", a, a, true, Transition{}},
		{"still no user", uuid.Nil, uuid.Nil, true, Transition{}},
		{"user appears", uuid.Nil, a, true, Transition{CancelPrevious: true, Reset: true, StartNew: true}},
		{"user switches", a, b, true, Transition{CancelPrevious: true, Reset: true, StartNew: true}},
		{"user signs out", a, uuid.Nil, true, Transition{CancelPrevious: true, Reset: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Plan(tc.prev, tc.next, tc.mounted))
		})
	}
}
