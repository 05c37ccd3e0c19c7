package conn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradingapp/pkg/exception"
)

func TestPostgresDSN(t *testing.T) {
	testCases := []struct {
		desc     string
		option   Option
		expected string
	}{
		{
			"defaults",
			Option{},
			"postgres://localhost:5432?sslmode=disable",
		},
		{
			"full",
			Option{Host: "db", Port: 6543, User: "ledger", Password: "secret", Database: "trading", SSLMode: "require"},
			"postgres://ledger:secret@db:6543/trading?sslmode=require",
		},
		{
			"conn string wins",
			Option{Host: "ignored", ConnString: "postgres://x"},
			"postgres://x",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			dsn, err := tc.option.dsn()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, dsn)
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	dsn, err := Option{
		Driver:   DriverMySQL,
		Host:     "127.0.0.1",
		User:     "root",
		Password: "pw",
		Database: "order_matching",
	}.dsn()
	require.NoError(t, err)

	assert.Contains(t, dsn, "root:pw@tcp(127.0.0.1:3306)/order_matching")
	assert.Contains(t, dsn, "parseTime=true")

	dsn, err = Option{Driver: DriverMySQL, User: "root", Database: "order_matching"}.dsn()
	require.NoError(t, err)
	assert.Contains(t, dsn, "root@tcp(localhost:3306)/order_matching")
}

func TestSQLiteDSN(t *testing.T) {
	dsn, err := Option{Driver: DriverSQLite}.dsn()
	require.NoError(t, err)
	assert.Equal(t, defaultSQLiteDatabase, dsn)
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := New(Option{Driver: "oracle"})
	assert.ErrorIs(t, err, exception.ErrUnsupportedDriver)
}

func TestOpenSQLite(t *testing.T) {
	client, err := New(Option{Driver: DriverSQLite, Database: "file::memory:"})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, DriverSQLite, client.Driver())
	require.NoError(t, client.DB().Exec("SELECT 1").Error)
}

func TestNilClient(t *testing.T) {
	var client *Client
	assert.Nil(t, client.DB())
	assert.Empty(t, client.Driver())
	assert.ErrorIs(t, client.Close(), exception.ErrNilInstance)
}
