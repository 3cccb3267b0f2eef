package cache

import "time"

const (
	// ForumCategoriesKey holds the distinct forum species list.
	ForumCategoriesKey = "forum:categories"
	// SessionKeyPrefix namespaces login sessions.
	SessionKeyPrefix = "sess:"
)

const (
	ForumCategoriesTTL = 10 * time.Minute
)
