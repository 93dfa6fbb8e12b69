package registry

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/trendwave/connect/internal/database/models"
	"gorm.io/gorm"
)

// ErrCodeExhausted is returned when no free tenant code is found within
// the attempt budget. With a 4-digit suffix space this only happens when
// a prefix is nearly full.
var ErrCodeExhausted = errors.New("could not allocate a unique tenant code")

const codeAttempts = 5

var codePrefixes = map[models.TenantType]string{
	models.TenantTypeSchool:      "TWC",
	models.TenantTypeAssociation: "TWCA",
	models.TenantTypeBusiness:    "TWCB",
	models.TenantTypeHospital:    "TWCH",
	models.TenantTypeAgency:      "TWCG",
	models.TenantTypeNGO:         "TWCN",
	models.TenantTypeChurch:      "TWCC",
	models.TenantTypeFactory:     "TWCF",
}

// CodePrefix returns the tenant code prefix for an organization type.
func CodePrefix(t models.TenantType) string {
	return codePrefixes[t]
}

// generateCode mints a candidate tenant code (prefix + 4 random digits)
// and re-queries the store until it finds one that is free. The unique
// index on the code column backs this up against races.
func generateCode(tx *gorm.DB, t models.TenantType) (string, error) {
	prefix, ok := codePrefixes[t]
	if !ok {
		return "", fmt.Errorf("no code prefix for tenant type %q", t)
	}

	for i := 0; i < codeAttempts; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10000))
		if err != nil {
			return "", fmt.Errorf("generating code suffix: %w", err)
		}
		candidate := fmt.Sprintf("%s%04d", prefix, n.Int64())

		var count int64
		if err := tx.Model(&models.Tenant{}).Where("code = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}

	return "", ErrCodeExhausted
}
