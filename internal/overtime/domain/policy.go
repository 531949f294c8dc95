package domain

import "strings"

// VisibilityPolicy decides which users appear on the admin dashboard. It is
// injected into the dashboard service so deployment-specific deny lists stay
// out of the core listing logic.
type VisibilityPolicy func(User) bool

// AllUsers admits every user.
func AllUsers(User) bool { return true }

// HideUsernames returns a policy that filters out the given usernames,
// compared case-insensitively like every other username lookup.
func HideUsernames(usernames ...string) VisibilityPolicy {
	hidden := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		u = strings.ToLower(strings.TrimSpace(u))
		if u != "" {
			hidden[u] = struct{}{}
		}
	}
	return func(u User) bool {
		_, ok := hidden[strings.ToLower(u.Username)]
		return !ok
	}
}
