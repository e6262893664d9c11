package clip

import (
	"reflect"
	"testing"

	"github.com/kickclipz/Masterclipper/model"
)

var testMilestones = []model.Milestone{
	{Threshold: 5, RoleName: "A"},
	{Threshold: 25, RoleName: "B"},
}

func TestEarnedRoles(t *testing.T) {
	cases := []struct {
		total int
		want  []string
	}{
		{total: 0, want: nil},
		{total: 4, want: nil},
		{total: 5, want: []string{"A"}},
		{total: 24, want: []string{"A"}},
		{total: 26, want: []string{"A", "B"}},
	}

	for _, tc := range cases {
		got := EarnedRoles(tc.total, testMilestones)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("EarnedRoles(%d) = %v, want %v", tc.total, got, tc.want)
		}
	}
}

func TestRolesToAdd(t *testing.T) {
	guildRoles := map[string]string{"A": "role-a", "B": "role-b"}

	cases := []struct {
		name   string
		earned []string
		guild  map[string]string
		held   []string
		want   []string
	}{
		{
			name:   "grants everything missing",
			earned: []string{"A", "B"},
			guild:  guildRoles,
			held:   nil,
			want:   []string{"role-a", "role-b"},
		},
		{
			name:   "skips roles already held",
			earned: []string{"A", "B"},
			guild:  guildRoles,
			held:   []string{"role-a"},
			want:   []string{"role-b"},
		},
		{
			name:   "skips earned names with no guild role",
			earned: []string{"A", "B"},
			guild:  map[string]string{"A": "role-a"},
			held:   nil,
			want:   []string{"role-a"},
		},
		{
			name:   "nothing to add",
			earned: []string{"A"},
			guild:  guildRoles,
			held:   []string{"role-a", "unrelated"},
			want:   nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RolesToAdd(tc.earned, tc.guild, tc.held)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("RolesToAdd = %v, want %v", got, tc.want)
			}
		})
	}
}
