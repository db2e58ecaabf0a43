// Package migrations содержит SQL миграции схемы продаж.
// Файлы встраиваются в бинарник и применяются через goose.
package migrations

import "embed"

// FS - встроенные файлы миграций
//
//go:embed *.sql
var FS embed.FS
