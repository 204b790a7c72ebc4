// Package ast defines the expression tree of one side of a linear equation
// together with the operations the solver needs on it: locating the variable,
// folding constants and rendering.
//
//	tree := ast.NewAdd(ast.NewMul(ast.Constant{Value: 2}, ast.Variable{Name: "x"}), ast.Constant{Value: 3})
//	path, _ := ast.VariablePath(tree) // [Left Right]
//	fmt.Println(tree)                  // (2 * x) + 3
package ast
