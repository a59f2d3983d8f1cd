package about

import (
	"testing"

	"github.com/dalemusser/duasite/internal/domain/models"
)

func TestSplitTeam(t *testing.T) {
	team := []models.TeamMember{
		{Name: "A", Type: models.TeamTypeFounder},
		{Name: "B", Type: models.TeamTypeMember},
		{Name: "C", Type: models.TeamTypeCoFounder},
		{Name: "D", Type: models.TeamTypeMember},
	}
	founders, members := splitTeam(team)
	if len(founders) != 2 || founders[0].Name != "A" || founders[1].Name != "C" {
		t.Errorf("founders = %+v", founders)
	}
	if len(members) != 2 || members[0].Name != "B" || members[1].Name != "D" {
		t.Errorf("members = %+v", members)
	}
}

func TestGroupPartners(t *testing.T) {
	groups := groupPartners([]models.Partner{
		{Name: "Sponsor Co", Type: "sponsor"},
		{Name: "InsideGlobal", Type: "collaborator"},
		{Name: "Red Crescent", Type: "partner"},
		{Name: "Local Club", Type: "collaborator"},
	})
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	want := []string{"Collaborators", "Partners", "Sponsors"}
	for i, g := range groups {
		if g.Label != want[i] {
			t.Errorf("group[%d] = %q, want %q", i, g.Label, want[i])
		}
	}
	if len(groups[0].Partners) != 2 {
		t.Errorf("collaborators = %d, want 2", len(groups[0].Partners))
	}
}
