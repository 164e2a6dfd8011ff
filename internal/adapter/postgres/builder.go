package postgres

import "github.com/Masterminds/squirrel"

// Builder returns a squirrel statement builder with PostgreSQL
// placeholder format. Repositories build their queries from it so
// placeholder numbering is never hand-managed.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
