package cache

import "fmt"

// Cache key builders. Keys are namespaced per entity so that
// DeletePattern can invalidate a user's derived data in one call.

func UserProfileKey(userID int64) string {
	return fmt.Sprintf("user:%d:profile", userID)
}

func UserBadgesKey(userID int64) string {
	return fmt.Sprintf("user:%d:badges", userID)
}

func UserPattern(userID int64) string {
	return fmt.Sprintf("user:%d:*", userID)
}

func LeaderboardKey(limit int) string {
	return fmt.Sprintf("leaderboard:%d", limit)
}

func LeaderboardPattern() string {
	return "leaderboard:*"
}

func BadgeCountsKey() string {
	return "badges:counts"
}
