// Package store persists the asset catalog.
//
// Gateway is the table-addressed boundary (get all, get by columns, insert,
// update by id) and GormGateway implements it for MySQL, PostgreSQL and
// SQLite. Catalog layers typed operations on a Gateway: lookups by remote id,
// current revision selection, category activity and idempotent join creation.
//
// Bind a Gateway to a transaction to make a whole reconciliation pass atomic.
package store
