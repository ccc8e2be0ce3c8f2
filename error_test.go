package pikevm

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/coregx/pikevm/syntax"
)

// TestCompileErrorCauses verifies that every rejected pattern yields a
// *SyntaxError whose cause can be tested with errors.Is.
func TestCompileErrorCauses(t *testing.T) {
	tests := []struct {
		pattern string
		cause   error
	}{
		{"(a", syntax.ErrMissingParen},
		{"((a)", syntax.ErrMissingParen},
		{"a)", syntax.ErrUnexpectedParen},
		{")", syntax.ErrUnexpectedParen},
		{"*a", syntax.ErrMissingRepeatArgument},
		{"a**", syntax.ErrMissingRepeatArgument},
		{"a|+", syntax.ErrMissingRepeatArgument},
		{"", syntax.ErrMissingExpression},
		{"   ", syntax.ErrMissingExpression},
		{"a|", syntax.ErrMissingExpression},
		{"()", syntax.ErrMissingExpression},
		{"a-b", syntax.ErrInvalidChar},
		{"[a]", syntax.ErrInvalidChar},
		{"é", syntax.ErrInvalidChar},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if err == nil {
				t.Fatalf("Compile(%q) = %v, want error", tt.pattern, re)
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("Compile(%q) error = %v, want cause %v", tt.pattern, err, tt.cause)
			}

			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Compile(%q) error %T is not *SyntaxError", tt.pattern, err)
			}
			if se.Pattern != tt.pattern {
				t.Errorf("SyntaxError.Pattern = %q, want %q", se.Pattern, tt.pattern)
			}
			if se.Pos < 0 || se.Pos > len(tt.pattern) {
				t.Errorf("SyntaxError.Pos = %d, out of range for %q", se.Pos, tt.pattern)
			}
		})
	}
}

func TestCompileErrorMessage(t *testing.T) {
	_, err := Compile("(abc")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"(abc", "missing closing )"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestMustCompilePanicMessage(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustCompile did not panic")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("panic value %T, want string", r)
		}
		if !strings.HasPrefix(msg, "pikevm: Compile(`a**`): ") {
			t.Errorf("panic message = %q", msg)
		}
	}()
	MustCompile("a**")
}

func TestConfigErrorIsNotSyntaxError(t *testing.T) {
	config := DefaultConfig()
	config.MaxNestingDepth = 0
	_, err := CompileWithConfig("a", config)

	var se *SyntaxError
	if errors.As(err, &se) {
		t.Fatalf("config error %v reported as syntax error", err)
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not *ConfigError", err)
	}
}
