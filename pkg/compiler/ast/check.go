package ast

// Category is the static type of an expression.
type Category int

const (
	Error Category = iota
	Numeric
	Boolean
	String
)

func (c Category) String() string {
	switch c {
	case Numeric:
		return "Numeric"
	case Boolean:
		return "Boolean"
	case String:
		return "String"
	}
	return "Error"
}

// Env reports the category of a variable's current value.
type Env interface {
	CategoryOf(name string) (Category, bool)
}

// Check computes the category of expr. Variable categories come from env, so
// the result can change between evaluations and is never cached.
func Check(expr Expression, env Env) Category {
	switch e := expr.(type) {
	case *Literal:
		if e.IsString {
			return String
		}
		return Numeric

	case *Variable:
		if env == nil {
			return Error
		}
		if c, ok := env.CategoryOf(e.Name); ok {
			return c
		}
		return Error

	case *Binary:
		left, right := Check(e.Left, env), Check(e.Right, env)
		switch e.Op.Class() {
		case Arithmetic:
			if left == Numeric && right == Numeric {
				return Numeric
			}
		case Relational:
			if left == Numeric && right == Numeric {
				return Boolean
			}
		case Equality:
			if left != Error && left == right {
				return Boolean
			}
		case Logical:
			if left == Boolean && right == Boolean {
				return Boolean
			}
		}
		return Error

	case *Unary:
		operand := Check(e.Operand, env)
		if e.Op == Negate && operand == Numeric {
			return Numeric
		}
		if e.Op == Not && operand == Boolean {
			return Boolean
		}
		return Error

	case *Call:
		return Numeric
	}
	return Error
}
