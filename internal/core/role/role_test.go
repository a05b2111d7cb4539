package role

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Set
		wantErr bool
	}{
		{
			name:  "single role",
			input: "sales",
			want:  Set{Sales},
		},
		{
			name:  "multiple roles with spaces",
			input: "sales, finance",
			want:  Set{Sales, Finance},
		},
		{
			name:  "duplicates collapse",
			input: "ops,ops",
			want:  Set{Ops},
		},
		{
			name:  "empty string is empty set",
			input: "",
			want:  Set{},
		},
		{
			name:    "unknown role rejected",
			input:   "sales,warehouse",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Parse(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSetHasAny(t *testing.T) {
	s := Set{Sales, Collections}

	if !s.HasAny(Finance, Collections) {
		t.Error("HasAny(finance, collections) = false, want true")
	}
	if s.HasAny(Admin, Ops) {
		t.Error("HasAny(admin, ops) = true, want false")
	}
}

func TestSetAny(t *testing.T) {
	s := Set{Sales, Finance}

	if !s.Any(func(r Role) bool { return r == Finance }) {
		t.Error("Any(finance predicate) = false, want true")
	}
	if s.Any(func(r Role) bool { return r == Admin }) {
		t.Error("Any(admin predicate) = true, want false")
	}
	if (Set{}).Any(func(Role) bool { return true }) {
		t.Error("empty set Any = true, want false")
	}
}
