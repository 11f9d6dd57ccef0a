package common

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameDayUsesLocation(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	a := time.Date(2024, 1, 10, 22, 30, 0, 0, time.UTC) // 11 января 01:30 по Москве
	b := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b, time.UTC))
	assert.False(t, SameDay(a, b, msk))
	assert.Equal(t, "2024-01-11", FormatDate(a, msk))
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, msk), Yesterday(a, msk))
}

func TestPluralize(t *testing.T) {
	cases := map[int]string{
		1: "1 день", 2: "2 дня", 5: "5 дней", 11: "11 дней",
		21: "21 день", 22: "22 дня", 112: "112 дней",
	}
	for n, want := range cases {
		assert.Equal(t, want, FormatStreak(n))
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   int
	}{
		{ErrHabitNotFound, http.StatusNotFound, 40402},
		{fmt.Errorf("обёртка: %w", ErrUserNotFound), http.StatusNotFound, 40401},
		{ErrAlreadyCompleted, http.StatusBadRequest, 40010},
		{fmt.Errorf("%w: имя", ErrInvalidInput), http.StatusBadRequest, 40001},
		{ErrInvalidRefreshToken, http.StatusForbidden, 40301},
		{fmt.Errorf("pg: connection reset"), http.StatusInternalServerError, 50000},
	}
	for _, c := range cases {
		status, code := Classify(c.err)
		assert.Equal(t, c.status, status, c.err.Error())
		assert.Equal(t, c.code, code, c.err.Error())
	}
}
