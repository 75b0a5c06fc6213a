package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PUBLIC_STORE_DOMAIN", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PG_DSN", "")
	t.Setenv("PG_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, MockShopDomain, cfg.Storefront.StoreDomain)
	assert.Equal(t, "parts", cfg.Catalog.DefaultHandle)
	assert.Equal(t, 12, cfg.Catalog.PageSize)
	assert.Equal(t, []string{"GET", "OPTIONS"}, cfg.Server.AllowedMethods)
	assert.False(t, cfg.PageViewLogEnabled())
	assert.Nil(t, cfg.Server.TrustedProxies)
}

func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("PUBLIC_STORE_DOMAIN", "")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.Server.TrustedProxies)
}

func TestLoad_RequiresSessionSecretForRealStore(t *testing.T) {
	t.Setenv("PUBLIC_STORE_DOMAIN", "parts-shop.myshopify.com")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "SESSION_SECRET")

	t.Setenv("SESSION_SECRET", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "parts-shop.myshopify.com", cfg.Storefront.StoreDomain)
}

func TestLoad_InvalidIntegerFallsBack(t *testing.T) {
	t.Setenv("PUBLIC_STORE_DOMAIN", "")
	t.Setenv("COLLECTION_PAGE_SIZE", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Catalog.PageSize)
}

func TestValidate_PageSize(t *testing.T) {
	cfg := &Config{
		Storefront: StorefrontConfig{StoreDomain: MockShopDomain},
		Catalog:    CatalogConfig{PageSize: 500, CollectionsSize: 10},
	}
	assert.ErrorContains(t, cfg.Validate(), "COLLECTION_PAGE_SIZE")
}

func TestGetPostgreSQLDSN(t *testing.T) {
	cfg := &Config{PostgreSQL: PostgreSQLConfig{
		Host:     "db",
		Port:     5432,
		User:     "app",
		Password: "pw",
		Database: "storefront",
		SSLMode:  "disable",
	}}
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=storefront sslmode=disable", cfg.GetPostgreSQLDSN())
	assert.True(t, cfg.PageViewLogEnabled())

	cfg.PostgreSQL.DSN = "postgres://app@db/storefront"
	assert.Equal(t, "postgres://app@db/storefront", cfg.GetPostgreSQLDSN())
}
