package database

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escape các LIKE/ILIKE metacharacters (%, _, \) trong user input
// để search text match literal substring thay vì hoạt động như wildcard
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
