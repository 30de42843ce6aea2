package domain

import (
	"testing"
)

func TestRoleDirectoryIsTotal(t *testing.T) {
	t.Parallel()

	for _, r := range AllRoles() {
		if !r.Valid() {
			t.Fatalf("role %s reported invalid", r)
		}
		if bt := r.BalanceType(); !bt.Valid() {
			t.Fatalf("role %s has no balance type", r)
		}
		if r.Category() == "" {
			t.Fatalf("role %s has no category", r)
		}
		if r.Name() == "" {
			t.Fatalf("role %s has no verbose name", r)
		}
	}

	if Role("not_a_role").Valid() {
		t.Fatal("unknown role reported valid")
	}
}

func TestGroupRolesAreRegistered(t *testing.T) {
	t.Parallel()

	for _, g := range AllRoleGroups() {
		roles := GroupRoles(g)
		if len(roles) == 0 {
			t.Fatalf("group %s has no roles", g)
		}
		for _, r := range roles {
			if !r.Valid() {
				t.Fatalf("group %s references unknown role %s", g, r)
			}
		}
	}
}

func TestAssetsGroupIsCurrentPlusNonCurrent(t *testing.T) {
	t.Parallel()

	want := len(GroupRoles(GroupCurrentAssets)) + len(GroupRoles(GroupNonCurrentAssets))
	if got := len(GroupRoles(GroupAssets)); got != want {
		t.Fatalf("GROUP_ASSETS has %d roles, want %d", got, want)
	}
}

func TestContraRoles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role   Role
		contra bool
	}{
		{AssetCACash, false},
		{AssetPPEEquipmentDepr, true},
		{AssetIntangiblesAmort, true},
		{AssetCAUncollectible, true},
		{EquityDividends, true},
		{EquityCommonStock, false},
		{IncomeOperational, false},
		{ExpenseDepreciation, false},
	}

	for _, tt := range tests {
		if got := tt.role.IsContra(); got != tt.contra {
			t.Errorf("role %s: IsContra() = %v, want %v", tt.role, got, tt.contra)
		}
	}
}

func TestBalanceTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role Role
		want TxType
	}{
		{AssetCACash, Debit},
		{AssetPPEPlantDepr, Credit},
		{LiabilityCLAccPayable, Credit},
		{EquityCommonStock, Credit},
		{EquityDividends, Debit},
		{IncomeOperational, Credit},
		{COGS, Debit},
		{ExpenseOperational, Debit},
	}

	for _, tt := range tests {
		if got := tt.role.BalanceType(); got != tt.want {
			t.Errorf("role %s: balance type = %s, want %s", tt.role, got, tt.want)
		}
	}
}

func TestGroupsOfMembership(t *testing.T) {
	t.Parallel()

	groups := GroupsOf(AssetCACash)
	var inAssets, inQuick, inCurrent bool
	for _, g := range groups {
		switch g {
		case GroupAssets:
			inAssets = true
		case GroupQuickAssets:
			inQuick = true
		case GroupCurrentAssets:
			inCurrent = true
		}
	}
	if !inAssets || !inQuick || !inCurrent {
		t.Fatalf("cash role missing from expected groups, got %v", groups)
	}
}

func TestActivityClassification(t *testing.T) {
	t.Parallel()

	for _, a := range ValidActivities {
		if !a.Valid() {
			t.Fatalf("activity %q reported invalid", a)
		}
	}

	if !ActivityOperating.IsOperating() {
		t.Fatal("op not operating")
	}
	if !ActivityInvestingPPE.IsInvesting() || !ActivityInvestingSecurities.IsInvesting() {
		t.Fatal("investing sub-tags not investing")
	}
	if !ActivityFinancingEquity.IsFinancing() || !ActivityFinancingDividends.IsFinancing() {
		t.Fatal("financing sub-tags not financing")
	}
	if ActivityOperating.IsFinancing() || ActivityFinancingSTD.IsInvesting() {
		t.Fatal("activity prefix confusion")
	}
	if !ActivityNone.Valid() {
		t.Fatal("empty activity must be valid (untagged entry)")
	}
	if Activity("bogus").Valid() {
		t.Fatal("unknown activity reported valid")
	}
}
