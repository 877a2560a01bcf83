package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/schemagraph/pkg/adapter"
)

func TestBuildMySQLDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   adapter.Config
		expected string
	}{
		{
			name: "basic connection",
			config: adapter.Config{
				Host:     "db.example.com",
				Port:     3307,
				Database: "shop",
				Username: "reader",
				Password: "secret",
			},
			expected: "reader:secret@tcp(db.example.com:3307)/shop",
		},
		{
			name:     "defaults",
			config:   adapter.Config{Database: "shop"},
			expected: "tcp(localhost:3306)/shop",
		},
		{
			name: "with tls option",
			config: adapter.Config{
				Database: "shop",
				Username: "reader",
				Options:  map[string]string{"tls": "skip-verify"},
			},
			expected: "reader@tcp(localhost:3306)/shop?tls=skip-verify",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildMySQLDSN(tt.config))
		})
	}
}

func TestAdapter_ReadSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("information_schema.TABLES").
		WithArgs("shop").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).AddRow("employees"))
	mock.ExpectQuery("information_schema.COLUMNS").
		WithArgs("shop").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME", "COLUMN_NAME", "DATA_TYPE", "IS_NULLABLE", "COLUMN_DEFAULT", "ORDINAL_POSITION", "is_pk"}).
			AddRow("employees", "id", "int", "NO", nil, 1, true).
			AddRow("employees", "manager_id", "int", "YES", nil, 2, false))
	mock.ExpectQuery("KEY_COLUMN_USAGE").
		WithArgs("shop").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME", "CONSTRAINT_NAME", "COLUMN_NAME", "REFERENCED_TABLE_NAME", "REFERENCED_COLUMN_NAME", "UPDATE_RULE", "DELETE_RULE"}).
			AddRow("employees", "fk_manager", "manager_id", "employees", "id", "RESTRICT", "SET NULL"))

	adp := New(nil)
	adp.DB = db
	adp.schema = "shop"

	schema, err := adp.ReadSchema(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	employees, ok := schema.Table("employees")
	require.True(t, ok)
	assert.Equal(t, []string{"id"}, employees.PrimaryKey())
	require.Len(t, employees.ForeignKeys, 1)
	assert.Equal(t, "employees", employees.ForeignKeys[0].RefTable)
	assert.Equal(t, "SET NULL", employees.ForeignKeys[0].OnDelete)
}

func TestAdapter_NotConnected(t *testing.T) {
	_, err := New(nil).ReadSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not established")
}

func TestAdapter_Registry(t *testing.T) {
	assert.True(t, adapter.IsRegistered("mysql"), "mysql reader should be registered")

	factory, ok := adapter.Get("mysql")
	require.True(t, ok)
	_, ok = factory(nil).(*Adapter)
	assert.True(t, ok, "factory should return *Adapter")
}
