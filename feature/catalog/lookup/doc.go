// Package lookup caches the catalog's reference tables and previews so a
// reconciliation pass resolves names to ids without a query per lookup.
package lookup
