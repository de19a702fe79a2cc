package dashboard

import "testing"

func adminGate() *Gate {
	return NewGate(RoleAdmin, "/signin", map[Role]string{
		RoleAdmin:   "/admin",
		RoleDoctor:  "/doctor",
		RolePatient: "/patient",
		RolePending: "/pending-approval",
	})
}

func TestGateCheck(t *testing.T) {
	g := adminGate()

	cases := []struct {
		name    string
		session Session
		want    Decision
	}{
		{
			"still loading",
			Session{},
			Decision{Kind: DecisionPending},
		},
		{
			"loading with stale identity",
			Session{SignedIn: true, Role: RoleAdmin},
			Decision{Kind: DecisionPending},
		},
		{
			"signed out",
			Session{Loaded: true},
			Decision{Kind: DecisionRedirect, Target: "/signin"},
		},
		{
			"wrong role",
			Session{Loaded: true, SignedIn: true, Role: RoleDoctor},
			Decision{Kind: DecisionRedirect, Target: "/doctor"},
		},
		{
			"pending role",
			Session{Loaded: true, SignedIn: true, Role: RolePending},
			Decision{Kind: DecisionRedirect, Target: "/pending-approval"},
		},
		{
			"unknown role",
			Session{Loaded: true, SignedIn: true, Role: Role("superuser")},
			Decision{Kind: DecisionRedirect, Target: "/signin"},
		},
		{
			"required role",
			Session{Loaded: true, SignedIn: true, Role: RoleAdmin},
			Decision{Kind: DecisionAllow},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Check(tc.session); got != tc.want {
				t.Errorf("Check(%+v) = %+v, want %+v", tc.session, got, tc.want)
			}
		})
	}
}

func TestGateCheckIsIdempotent(t *testing.T) {
	g := adminGate()
	s := Session{Loaded: true, SignedIn: true, Role: RoleDoctor}

	first := g.Check(s)
	for i := 0; i < 3; i++ {
		if got := g.Check(s); got != first {
			t.Fatalf("decision changed on re-check: %+v vs %+v", got, first)
		}
	}
}
