package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bundlebuilder/backend/internal/domain/shared"
)

// newMockBundleRepository creates a GormBundleRepository over a mocked
// SQL connection so query shapes can be asserted.
func newMockBundleRepository(t *testing.T) (*GormBundleRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormBundleRepository(gormDB), mock, mockDB
}

func TestGormBundleRepository_FindByIDForTenant_QueriesBothTenantAndID(t *testing.T) {
	repo, mock, mockDB := newMockBundleRepository(t)
	defer mockDB.Close()

	tenantID := uuid.New()
	bundleID := uuid.New()

	bundleRows := sqlmock.NewRows([]string{"id", "tenant_id", "title", "discount_type", "status", "min_products", "max_products", "version"}).
		AddRow(bundleID, tenantID, "Summer Pack", "percentage", "draft", 2, 5, 1)

	mock.ExpectQuery(`SELECT \* FROM "bundles" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
		WithArgs(tenantID, bundleID, 1).
		WillReturnRows(bundleRows)
	mock.ExpectQuery(`SELECT \* FROM "bundle_products" WHERE "bundle_products"\."bundle_id" = \$1 ORDER BY bundle_products\.created_at ASC`).
		WithArgs(bundleID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bundle_id", "catalog_product_id", "product_title"}))

	b, err := repo.FindByIDForTenant(context.Background(), tenantID, bundleID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Pack", b.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBundleRepository_FindByIDForTenant_MapsMissingRowToNotFound(t *testing.T) {
	repo, mock, mockDB := newMockBundleRepository(t)
	defer mockDB.Close()

	tenantID := uuid.New()
	bundleID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "bundles" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
		WithArgs(tenantID, bundleID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByIDForTenant(context.Background(), tenantID, bundleID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBundleRepository_CountForTenant_ScopesByTenant(t *testing.T) {
	repo, mock, mockDB := newMockBundleRepository(t)
	defer mockDB.Close()

	tenantID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bundles" WHERE tenant_id = \$1`).
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountForTenant(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
