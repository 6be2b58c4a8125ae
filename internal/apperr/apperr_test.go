package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("wrapped: %w", New(CodeSlotError, "reservation.CreateBooking", cause))

	assert.Equal(t, CodeSlotError, CodeOf(err))
	assert.True(t, Is(err, CodeSlotError))
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, &Error{Code: CodeSlotError})
	assert.NotErrorIs(t, err, &Error{Code: CodeBookingError})

	assert.Equal(t, CodeInternalError, CodeOf(errors.New("boom")))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestEveryCodeHasDistinctText(t *testing.T) {
	seen := map[string]Code{}
	for code := range texts {
		assert.NotEmpty(t, code.Title(), code)
		msg := code.Message()
		assert.NotEmpty(t, msg, code)
		if other, dup := seen[msg]; dup {
			t.Fatalf("codes %s and %s share message %q", code, other, msg)
		}
		seen[msg] = code
	}
}

func TestUserMessageHidesCause(t *testing.T) {
	err := New(CodeBookingError, "op", errors.New("pq: relation bookings does not exist"))
	assert.NotContains(t, err.UserMessage(), "pq:")

	inv := Invalid("op", "rating must be between %d and %d", 1, 5)
	assert.Equal(t, CodeInvalidRequest, inv.Code)
	assert.Contains(t, inv.UserMessage(), "rating must be between 1 and 5")
}

func TestUnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t, CodeInternalError.Title(), Code("WHATEVER").Title())
}
