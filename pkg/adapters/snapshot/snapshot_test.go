package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/schemagraph/internal/testutil"
	"github.com/leapstack-labs/schemagraph/pkg/adapter"
	"github.com/leapstack-labs/schemagraph/pkg/core"
)

func TestWriteReadFile(t *testing.T) {
	for _, name := range []string{"shop.yaml", "shop.yml", "shop.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := testutil.ShopSchema()

			require.NoError(t, WriteFile(path, want))

			got, err := ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, want.TableNames(), got.TableNames())

			orders, ok := got.Table("orders")
			require.True(t, ok)
			wantOrders, _ := want.Table("orders")
			assert.Equal(t, wantOrders.ForeignKeys, orders.ForeignKeys)
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		asJSON  bool
		tables  []string
		wantErr string
	}{
		{
			name: "yaml",
			data: `
version: 1
tables:
  - name: employees
    columns:
      - name: id
        type: INTEGER
        primary_key: true
      - name: manager_id
        type: INTEGER
        nullable: true
    foreign_keys:
      - column: manager_id
        ref_table: employees
        ref_column: id
`,
			tables: []string{"employees"},
		},
		{
			name:   "json",
			data:   `{"version": 1, "tables": [{"name": "a", "columns": []}, {"name": "b", "columns": []}]}`,
			asJSON: true,
			tables: []string{"a", "b"},
		},
		{
			name:   "empty yaml",
			data:   "",
			tables: []string{},
		},
		{
			name:    "unknown field",
			data:    "version: 1\ntablez: []\n",
			wantErr: "failed to parse snapshot",
		},
		{
			name:    "future version",
			data:    "version: 99\ntables: []\n",
			wantErr: "unsupported snapshot version",
		},
		{
			name:    "duplicate tables",
			data:    "tables:\n  - name: a\n  - name: a\n",
			wantErr: "duplicate table names",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := Decode([]byte(tt.data), tt.asJSON)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.tables, schema.TableNames())
		})
	}
}

func TestEncode_NilSchema(t *testing.T) {
	data, err := Encode(nil, true)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version": 1, "tables": []}`, string(data))
}

func TestReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.yaml")
	require.NoError(t, WriteFile(path, testutil.EmployeesSchema()))

	schema, err := adapter.Extract(context.Background(), core.ReaderConfig{Type: "snapshot", Path: path}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"employees"}, schema.TableNames())
}

func TestReader_Errors(t *testing.T) {
	ctx := context.Background()

	err := New(nil).Connect(ctx, core.ReaderConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is required")

	err = New(nil).Connect(ctx, core.ReaderConfig{Path: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = New(nil).ReadSchema(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not loaded")
}
