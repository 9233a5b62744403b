package expr

import (
	"errors"
	"strings"
	"testing"
)

func TestCompile_Valid(t *testing.T) {
	tests := []string{
		"z^2+c",
		"z*z + c",
		"sin(z) + c",
		"exp(-z^3) * c",
		"(1+2i)*z^2 + c",
		"z^-2 + 0.25",
		"conj(z)^2 + c",
		"ln(z) - 1e-3",
		"-z",
		"+z",
		"pi*i*z",
		"Re(z) + Im(c)*i",
		"z ^ 2 ^ 2",
		"3i",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			if _, err := Compile(src); err != nil {
				t.Fatalf("Compile(%q) failed: %v", src, err)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		src  string
		kind ErrorKind
		err  error
	}{
		{"", EmptyInput, ErrEmptyInput},
		{"   \t", EmptyInput, ErrEmptyInput},
		{"z^2+c)", UnbalancedParens, ErrUnbalancedParens},
		{"(z^2+c", UnbalancedParens, ErrUnbalancedParens},
		{"sin(z", UnbalancedParens, ErrUnbalancedParens},
		{"foo(z)", UnknownIdentifier, ErrUnknownIdentifier},
		{"w + c", UnknownIdentifier, ErrUnknownIdentifier},
		{"z c", TrailingInput, ErrTrailingInput},
		{"z^2 3", TrailingInput, ErrTrailingInput},
		{"z +", UnexpectedToken, ErrUnexpectedToken},
		{"* z", UnexpectedToken, ErrUnexpectedToken},
		{"()", UnexpectedToken, ErrUnexpectedToken},
		{"z $ c", UnexpectedToken, ErrUnexpectedToken},
		{"sin z", UnexpectedToken, ErrUnexpectedToken},
		{"sin(z c)", UnexpectedToken, ErrUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := Compile(tt.src)
			if err == nil {
				t.Fatalf("Compile(%q) = %v, want error", tt.src, e)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("Compile(%q) error %v does not match %v", tt.src, err, tt.err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if pe.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", pe.Kind, tt.kind)
			}
			if pe.Pos < 0 || pe.Pos > len(tt.src) {
				t.Errorf("position %d outside source of length %d", pe.Pos, len(tt.src))
			}
		})
	}
}

func TestCompile_DeepNesting(t *testing.T) {
	src := strings.Repeat("(", 10000) + "z" + strings.Repeat(")", 10000)
	if _, err := Compile(src); !errors.Is(err, ErrUnexpectedToken) {
		t.Errorf("expected nesting error, got %v", err)
	}

	src = strings.Repeat("-", 10000) + "z"
	if _, err := Compile(src); !errors.Is(err, ErrUnexpectedToken) {
		t.Errorf("expected nesting error for unary chain, got %v", err)
	}

	src = strings.Repeat("(", 50) + "z" + strings.Repeat(")", 50)
	if _, err := Compile(src); err != nil {
		t.Errorf("moderate nesting rejected: %v", err)
	}
}

func TestCompile_Deterministic(t *testing.T) {
	for _, src := range []string{"z^2+c", "sin(z)*cos(c) - z/2", "(z-1)^3/(3*z^2) + c"} {
		a := MustCompile(src)
		b := MustCompile(src)
		if !Equal(a, b) {
			t.Errorf("%q compiled to different trees: %v vs %v", src, a, b)
		}
		if a.String() != b.String() {
			t.Errorf("%q printed differently: %s vs %s", src, a, b)
		}
	}
}

func TestCompile_StringRoundTrip(t *testing.T) {
	for _, src := range []string{
		"z^2+c",
		"-z^2",
		"(-z)^2",
		"z^(2^3)",
		"(z^2)^3",
		"z-(c-1)",
		"z/(c*2)",
		"sin(z)*(1+2i)",
		"exp(-z)",
		"2i*z - 0.5",
	} {
		e := MustCompile(src)
		back, err := Compile(e.String())
		if err != nil {
			t.Errorf("%q printed as %q which fails to parse: %v", src, e, err)
			continue
		}
		if !Equal(e, back) {
			t.Errorf("%q printed as %q which parses to %v", src, e, back)
		}
	}
}

func TestCompile_Precedence(t *testing.T) {
	z := complex(1.5, -0.5)
	c := complex(0.25, 2)

	tests := []struct {
		src  string
		want complex128
	}{
		{"z+c*2", z + c*2},
		{"z-c-1", (z - c) - 1},
		{"z/c/2", (z / c) / 2},
		{"-z^2", -(z * z)},
		{"2^3^2", 512},
		{"(z+c)*2", (z + c) * 2},
		{"z*-c", z * -c},
		{"2+3i", complex(2, 3)},
		{"i*i", -1},
	}

	for _, tt := range tests {
		got := Eval(MustCompile(tt.src), z, c)
		if d := got - tt.want; real(d)*real(d)+imag(d)*imag(d) > 1e-20 {
			t.Errorf("Eval(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestCompile_Uses(t *testing.T) {
	tests := []struct {
		src  string
		z, c bool
	}{
		{"z^2+c", true, true},
		{"z^2", true, false},
		{"c", false, true},
		{"sin(1)", false, false},
	}
	for _, tt := range tests {
		z, c := Uses(MustCompile(tt.src))
		if z != tt.z || c != tt.c {
			t.Errorf("Uses(%q) = %v,%v want %v,%v", tt.src, z, c, tt.z, tt.c)
		}
	}
}

func TestParseError_Message(t *testing.T) {
	_, err := Compile("z^2+c)")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "offset 5") {
		t.Errorf("message %q lacks offset", err.Error())
	}
}
