// Package migrations ships the SQLite schema for accounts and their period
// history. Files are named NNNN_description.sql and applied in version order.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
