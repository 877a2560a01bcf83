package testutil

import "github.com/leapstack-labs/schemagraph/pkg/core"

func pk(name string, pos int) core.Column {
	return core.Column{Name: name, Type: "INTEGER", PrimaryKey: true, Position: pos}
}

func col(name, typ string, pos int) core.Column {
	return core.Column{Name: name, Type: typ, Position: pos}
}

func fk(id int, column, refTable string) core.ForeignKey {
	return core.ForeignKey{ID: id, Column: column, RefTable: refTable, RefColumn: "id"}
}

// ShopSchema returns the six-table shop schema used across tests:
// users, addresses, orders, order_items, products, categories.
func ShopSchema() *core.Schema {
	return core.NewSchema(
		core.Table{
			Name:    "users",
			Columns: []core.Column{pk("id", 0), col("name", "TEXT", 1), col("email", "TEXT", 2)},
		},
		core.Table{
			Name: "addresses",
			Columns: []core.Column{
				pk("id", 0), col("street_address", "TEXT", 1), col("city", "TEXT", 2),
				col("state", "TEXT", 3), col("zip_code", "TEXT", 4), col("user_id", "INTEGER", 5),
			},
			ForeignKeys: []core.ForeignKey{fk(0, "user_id", "users")},
		},
		core.Table{
			Name: "orders",
			Columns: []core.Column{
				pk("id", 0), col("order_date", "DATETIME", 1), col("user_id", "INTEGER", 2),
				col("shipping_address_id", "INTEGER", 3),
			},
			ForeignKeys: []core.ForeignKey{
				fk(0, "user_id", "users"),
				fk(1, "shipping_address_id", "addresses"),
			},
		},
		core.Table{
			Name: "order_items",
			Columns: []core.Column{
				pk("id", 0), col("order_id", "INTEGER", 1), col("product_id", "INTEGER", 2),
				col("quantity", "INTEGER", 3),
			},
			ForeignKeys: []core.ForeignKey{
				fk(0, "order_id", "orders"),
				fk(1, "product_id", "products"),
			},
		},
		core.Table{
			Name: "products",
			Columns: []core.Column{
				pk("id", 0), col("name", "TEXT", 1), col("price", "DECIMAL(10,2)", 2),
				col("category_id", "INTEGER", 3),
			},
			ForeignKeys: []core.ForeignKey{fk(0, "category_id", "categories")},
		},
		core.Table{
			Name:    "categories",
			Columns: []core.Column{pk("id", 0), col("name", "TEXT", 1)},
		},
	)
}

// EmployeesSchema returns a single table with a self-referencing foreign key.
func EmployeesSchema() *core.Schema {
	return core.NewSchema(core.Table{
		Name:        "employees",
		Columns:     []core.Column{pk("id", 0), col("name", "TEXT", 1), col("manager_id", "INTEGER", 2)},
		ForeignKeys: []core.ForeignKey{fk(0, "manager_id", "employees")},
	})
}
