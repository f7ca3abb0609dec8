package session

import "testing"

func guardWithRole(t *testing.T, claims map[string]any) *Guard {
	t.Helper()
	svc, store := newTestService(t)
	if claims != nil {
		if err := store.Save(makeCredential(t, claims)); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	return NewGuard(svc)
}

func TestGuardExactRoleMatch(t *testing.T) {
	cases := []struct {
		name     string
		claims   map[string]any
		required string
		want     Decision
	}{
		{"admin enters admin", map[string]any{"role": RoleAdmin}, RoleAdmin, Allow},
		{"customer denied admin", map[string]any{"role": RoleCustomer}, RoleAdmin, RedirectToLogin},
		{"admin denied customer", map[string]any{"role": RoleAdmin}, RoleCustomer, RedirectToLogin},
		{"anonymous denied", nil, RoleAdmin, RedirectToLogin},
		{"case sensitive", map[string]any{"role": "role_admin"}, RoleAdmin, RedirectToLogin},
		{"any role admitted when unrestricted", map[string]any{"role": "ROLE_TECNICO"}, "", Allow},
		{"anonymous denied even unrestricted", nil, "", RedirectToLogin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			guard := guardWithRole(t, tc.claims)
			if got := guard.CanEnter(tc.required); got != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}

func TestGuardDiscardsCorruptCredential(t *testing.T) {
	svc, store := newTestService(t)
	if err := store.Save("corrupt"); err != nil {
		t.Fatalf("save: %v", err)
	}
	guard := NewGuard(svc)
	if got := guard.CanEnter(RoleAdmin); got != RedirectToLogin {
		t.Fatalf("got %s", got)
	}
	if stored, _ := store.Get(); stored != "" {
		t.Fatalf("corrupt credential must be discarded, store holds %q", stored)
	}
}

func TestDecisionString(t *testing.T) {
	if Allow.String() != "allow" || RedirectToLogin.String() != "redirect_to_login" {
		t.Fatal("unexpected decision names")
	}
}
