package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCronExpr(t *testing.T) {
	assert.NoError(t, ValidateCronExpr("0 * * * *"))
	assert.NoError(t, ValidateCronExpr("*/5 2 * * 1"))
	assert.Error(t, ValidateCronExpr("not a cron"))
	assert.Error(t, ValidateCronExpr("0 * * *"))
}

func TestNextCronTime(t *testing.T) {
	from := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	next, err := NextCronTime("0 * * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC), next)

	_, err = NextCronTime("bogus", from)
	assert.Error(t, err)
}
