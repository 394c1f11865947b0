// Package middleware groups the Fiber middleware used by the catalog server.
//
//   - auth: rejects requests without the configured X-API-Key.
//   - rayid: tags every request with an X-Ray-ID, reusing the caller's id when present.
//
// Register rayid first so auth failures are traceable.
package middleware
