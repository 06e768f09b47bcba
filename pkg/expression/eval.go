package expression

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"
)

// ErrSyntax is returned by Evaluate for expressions outside the supported grammar.
var ErrSyntax = errors.New("expression syntax error")

// functions are the ffmpeg expression functions emitted by this package.
var functions = map[string]govaluate.ExpressionFunction{
	"if": fixed("if", 3, func(a []float64) float64 {
		if a[0] != 0 {
			return a[1]
		}
		return a[2]
	}),
	"lt": fixed("lt", 2, func(a []float64) float64 {
		if a[0] < a[1] {
			return 1
		}
		return 0
	}),
	"floor": fixed("floor", 1, func(a []float64) float64 { return math.Floor(a[0]) }),
	"max":   fixed("max", 2, func(a []float64) float64 { return math.Max(a[0], a[1]) }),
	"min":   fixed("min", 2, func(a []float64) float64 { return math.Min(a[0], a[1]) }),
}

// fixed adapts fn to govaluate with an arity and type check.
func fixed(name string, arity int, fn func([]float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != arity {
			return nil, fmt.Errorf("%s takes %d arguments, got %d", name, arity, len(args))
		}
		vals := make([]float64, arity)
		for i, a := range args {
			v, ok := a.(float64)
			if !ok {
				return nil, fmt.Errorf("%s: argument %d is %T, not a number", name, i+1, a)
			}
			vals[i] = v
		}
		return fn(vals), nil
	}
}

// Evaluate computes expr at time t. It understands the subset of the ffmpeg
// expression language produced by this package: numbers, t, + - * /, unary
// minus, parentheses and the functions if, lt, floor, max and min.
func Evaluate(expr string, t float64) (float64, error) {
	if strings.TrimSpace(expr) == "" {
		return 0, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(expr, functions)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if vars := parsed.Vars(); len(vars) > 0 {
		for _, v := range vars {
			if v != "t" {
				return 0, fmt.Errorf("%w: unknown variable %s", ErrSyntax, v)
			}
		}
	}

	out, err := evaluate(parsed, t)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not numeric", ErrSyntax, expr)
	}
	return v, nil
}

// evaluate runs parsed, turning the panics govaluate raises on some
// malformed token streams into errors.
func evaluate(parsed *govaluate.EvaluableExpression, t float64) (out interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return parsed.Evaluate(map[string]interface{}{"t": t})
}
