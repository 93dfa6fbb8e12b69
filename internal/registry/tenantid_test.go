package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendwave/connect/internal/database/models"
	"github.com/trendwave/connect/internal/testutil"
)

func TestCodePrefix(t *testing.T) {
	assert.Equal(t, "TWC", CodePrefix(models.TenantTypeSchool))
	assert.Equal(t, "TWCA", CodePrefix(models.TenantTypeAssociation))
	assert.Equal(t, "", CodePrefix(models.TenantType("bogus")))
}

func TestGenerateCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := generateCode(db, models.TenantType("bogus"))
		assert.Error(t, err)
	})

	t.Run("generated codes are unique against the store", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			code, err := generateCode(db, models.TenantTypeSchool)
			require.NoError(t, err)
			assert.Regexp(t, `^TWC\d{4}$`, code)

			// Persist each code so the next call must avoid it
			require.NoError(t, db.Create(&models.Tenant{
				Code:               code,
				Name:               "N" + code,
				RegistrationNumber: "R" + code,
				ContactEmail:       code + "@example.com",
				Type:               models.TenantTypeSchool,
				Status:             models.TenantStatusPending,
				PasswordHash:       "x",
			}).Error)

			assert.False(t, seen[code], "code %s minted twice", code)
			seen[code] = true
		}
	})
}
