package textnorm

import "testing"

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "trims whitespace", in: "  The Matrix  ", want: "The Matrix"},
		{name: "repairs lowercase mojibake", in: "PÃ¥l Ã¶sterberg", want: "Pål österberg"},
		{name: "repairs uppercase mojibake", in: "Ãsa Ãberg", want: "Åsa Öberg"},
		{name: "decodes unicode escape", in: `Björk`, want: "Björk"},
		{name: "repairs mojibake arriving as escapes", in: `PÃ¥l`, want: "Pål"},
		{name: "strips spurious backslashes", in: `Science\ Fiction\Adventure`, want: "Science FictionAdventure"},
		{name: "malformed escape degrades to stripped", in: `bad\uZZZZescape`, want: "baduZZZZescape"},
		{name: "plain text untouched", in: "Action Adventure Fantasy", want: "Action Adventure Fantasy"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Clean(tc.in); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"  The Matrix  ",
		`Björk`,
		`back\slash`,
		"PÃ¥l",
		`PÃ¥l`,
		"plain",
	}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Fatalf("Clean not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestCleanPtr(t *testing.T) {
	t.Parallel()

	if got := CleanPtr(nil); got != "" {
		t.Fatalf("CleanPtr(nil) = %q, want empty string", got)
	}
	value := " Quentin Tarantino "
	if got := CleanPtr(&value); got != "Quentin Tarantino" {
		t.Fatalf("CleanPtr = %q", got)
	}
}
