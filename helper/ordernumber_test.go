package helper

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)

	re := regexp.MustCompile(`^NYN-0307-\d{4}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, re, GenerateOrderNumber(now))
	}
}

func TestGenerateConsultationRef(t *testing.T) {
	now := time.Date(2026, time.December, 31, 23, 59, 0, 0, time.UTC)

	re := regexp.MustCompile(`^CAT-20261231-\d{4}$`)
	assert.Regexp(t, re, GenerateConsultationRef(now))
}
