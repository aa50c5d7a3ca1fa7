package metadata

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/google/cel-go/cel"

	"knkadmin/internal/core/record"
)

// MinLength rejects strings shorter than n runes.
func MinLength(n int, msg string) Validator {
	return func(value any) string {
		if utf8.RuneCountInString(record.Stringify(value)) < n {
			return msg
		}
		return ""
	}
}

// Min rejects numbers below min. Non-numeric values are rejected too.
func Min(min float64, msg string) Validator {
	return func(value any) string {
		n, ok := record.Number(value)
		if !ok || n < min {
			return msg
		}
		return ""
	}
}

// All runs validators in order and returns the first message.
func All(validators ...Validator) Validator {
	return func(value any) string {
		for _, v := range validators {
			if msg := v(value); msg != "" {
				return msg
			}
		}
		return ""
	}
}

var celEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("value", cel.DynType),
		cel.CrossTypeNumericComparisons(true),
	)
})

// Expr compiles a CEL predicate over the variable `value`. The validator fails with msg
// when the expression evaluates to false or cannot be evaluated for the given value.
func Expr(expr, msg string) (Validator, error) {
	env, err := celEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, iss.Err())
	}
	if ast.OutputType() != cel.BoolType && ast.OutputType() != cel.DynType {
		return nil, fmt.Errorf("expression %q must return bool, got %v", expr, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}

	return func(value any) string {
		out, _, err := prg.Eval(map[string]any{"value": value})
		if err != nil {
			return msg
		}
		if ok, isBool := out.Value().(bool); !isBool || !ok {
			return msg
		}
		return ""
	}, nil
}

// MustExpr is Expr that panics on a bad expression.
func MustExpr(expr, msg string) Validator {
	v, err := Expr(expr, msg)
	if err != nil {
		panic(err)
	}
	return v
}
