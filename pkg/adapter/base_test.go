package adapter

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/schemagraph/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testQueries = CatalogQueries{
	Tables:      "SELECT table_name FROM tables",
	Columns:     "SELECT column_name FROM columns",
	ForeignKeys: "SELECT constraint_name FROM fks",
}

func columnRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"table", "column", "type", "nullable", "default", "position", "pk"})
}

func fkRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"table", "constraint", "column", "ref_table", "ref_column", "on_update", "on_delete"})
}

func TestBaseSQLAdapter_Close(t *testing.T) {
	tests := []struct {
		name    string
		setupDB bool
	}{
		{name: "close with nil DB", setupDB: false},
		{name: "close with open DB", setupDB: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectClose()
				base.DB = db
			}

			assert.NoError(t, base.Close())
			assert.False(t, base.IsConnected())
		})
	}
}

func TestBaseSQLAdapter_ReadCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM tables").WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("users").AddRow("orders").AddRow("order_lines"))
	mock.ExpectQuery("FROM columns").WithArgs("public").
		WillReturnRows(columnRows().
			AddRow("users", "id", "integer", "NO", nil, 1, true).
			AddRow("orders", "id", "integer", "NO", nil, 1, true).
			AddRow("orders", "line_no", "integer", "NO", nil, 2, true).
			AddRow("orders", "user_id", "integer", "YES", "0", 3, false).
			AddRow("order_lines", "order_id", "integer", "NO", nil, 1, false).
			AddRow("order_lines", "line_no", "integer", "NO", nil, 2, false).
			AddRow("ignored_view", "x", "integer", "YES", nil, 1, false))
	mock.ExpectQuery("FROM fks").WithArgs("public").
		WillReturnRows(fkRows().
			AddRow("orders", "orders_user_fk", "user_id", "users", "id", "NO ACTION", "CASCADE").
			AddRow("order_lines", "lines_order_fk", "order_id", "orders", "id", nil, nil).
			AddRow("order_lines", "lines_order_fk", "line_no", "orders", "line_no", nil, nil))

	base := &BaseSQLAdapter{DB: db}
	schema, err := base.ReadCatalog(context.Background(), testQueries, "public")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, []string{"users", "orders", "order_lines"}, schema.TableNames())

	orders, ok := schema.Table("orders")
	require.True(t, ok)
	require.Len(t, orders.Columns, 3)
	assert.True(t, orders.Columns[0].PrimaryKey)
	assert.True(t, orders.Columns[2].Nullable)
	require.NotNil(t, orders.Columns[2].Default)
	assert.Equal(t, "0", *orders.Columns[2].Default)
	assert.Nil(t, orders.Columns[0].Default)

	require.Len(t, orders.ForeignKeys, 1)
	assert.Equal(t, core.ForeignKey{
		ID: 0, Seq: 0, Column: "user_id", RefTable: "users", RefColumn: "id",
		OnUpdate: "NO ACTION", OnDelete: "CASCADE",
	}, orders.ForeignKeys[0])

	lines, ok := schema.Table("order_lines")
	require.True(t, ok)
	require.Len(t, lines.ForeignKeys, 2)
	assert.Equal(t, 0, lines.ForeignKeys[0].ID)
	assert.Equal(t, 0, lines.ForeignKeys[1].ID)
	assert.Equal(t, 1, lines.ForeignKeys[1].Seq)
	assert.Equal(t, "line_no", lines.ForeignKeys[1].RefColumn)
}

func TestBaseSQLAdapter_ReadCatalogErrors(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		errMsg    string
	}{
		{
			name: "tables query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM tables").WillReturnError(assert.AnError)
			},
			errMsg: "failed to query tables",
		},
		{
			name: "columns query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM tables").WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("users"))
				mock.ExpectQuery("FROM columns").WillReturnError(assert.AnError)
			},
			errMsg: "failed to query column metadata",
		},
		{
			name: "foreign key query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM tables").WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("users"))
				mock.ExpectQuery("FROM columns").WillReturnRows(columnRows())
				mock.ExpectQuery("FROM fks").WillReturnError(assert.AnError)
			},
			errMsg: "failed to query foreign keys",
		},
		{
			name: "row error while iterating tables",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM tables").WillReturnRows(
					sqlmock.NewRows([]string{"table_name"}).AddRow("users").RowError(0, assert.AnError))
			},
			errMsg: "error iterating tables",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			tt.setupMock(mock)

			base := &BaseSQLAdapter{DB: db}
			schema, err := base.ReadCatalog(context.Background(), testQueries, "public")
			require.Error(t, err)
			assert.Nil(t, schema)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.ErrorIs(t, err, assert.AnError)
		})
	}
}

func TestBaseSQLAdapter_ReadCatalogNotConnected(t *testing.T) {
	base := &BaseSQLAdapter{}
	_, err := base.ReadCatalog(context.Background(), testQueries, "public")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database connection not established")
}

func TestResolveImplicitReferences(t *testing.T) {
	schema := core.NewSchema(
		core.Table{Name: "users", Columns: []core.Column{{Name: "id", PrimaryKey: true}}},
		core.Table{Name: "pairs", Columns: []core.Column{
			{Name: "a", PrimaryKey: true},
			{Name: "b", PrimaryKey: true},
		}},
		core.Table{Name: "orders", ForeignKeys: []core.ForeignKey{
			{ID: 0, Column: "user_id", RefTable: "users"},
			{ID: 1, Seq: 0, Column: "pair_a", RefTable: "pairs"},
			{ID: 1, Seq: 1, Column: "pair_b", RefTable: "pairs"},
			{ID: 2, Column: "ghost_id", RefTable: "ghosts"},
			{ID: 3, Column: "owner", RefTable: "users", RefColumn: "email"},
		}},
	)

	ResolveImplicitReferences(schema)

	orders, _ := schema.Table("orders")
	got := make([]string, len(orders.ForeignKeys))
	for i, fk := range orders.ForeignKeys {
		got[i] = fk.RefColumn
	}
	assert.Equal(t, []string{"id", "a", "b", "", "email"}, got)

	ResolveImplicitReferences(nil)
}
