package clip

import "github.com/kickclipz/Masterclipper/model"

// EarnedRoles returns the names of every milestone role a user with the given
// total has reached. Milestone roles stack: a user past threshold 50 still
// holds the threshold-5 role.
func EarnedRoles(total int, milestones []model.Milestone) []string {
	var roles []string
	for _, m := range milestones {
		if total >= m.Threshold {
			roles = append(roles, m.RoleName)
		}
	}
	return roles
}

// RolesToAdd resolves earned role names against the guild's roles and the
// member's current role IDs, returning the IDs still missing. Earned names
// with no matching guild role are skipped; roles are never created here.
func RolesToAdd(earned []string, guildRoles map[string]string, memberRoleIDs []string) []string {
	held := make(map[string]struct{}, len(memberRoleIDs))
	for _, id := range memberRoleIDs {
		held[id] = struct{}{}
	}

	var add []string
	for _, name := range earned {
		id, ok := guildRoles[name]
		if !ok {
			continue
		}
		if _, ok := held[id]; ok {
			continue
		}
		add = append(add, id)
	}
	return add
}
