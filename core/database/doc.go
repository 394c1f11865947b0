// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure connections for the catalog
// store. Three drivers are supported: MySQL, PostgreSQL and SQLite. SQLite is
// the default since a catalog is usually a single local file.
//
// # Connect
//
// Connect opens the connection described by Config and verifies it with a ping.
// SQLite connections are limited to a single open connection so that an
// in-memory database is shared by every caller.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table. The schema command uses it to
// print the inventory of catalog tables after they have been created.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "asset_revision")
package database
