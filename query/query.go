package query

// Compile takes a query expression and returns a predicate over a single
// record. This function performs the following steps:
// 1. Lexical analysis
// 2. Parsing
// 3. AST compilation
func Compile(expr string) (CompiledExpression, error) {
	// Create a new lexer with the input query string
	lexer := NewLexer(expr)

	// Create a new parser using the lexer
	parser := NewParser(lexer)

	// Parse the query and generate an Abstract Syntax Tree (AST)
	ast, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	// Compile the AST into a CompiledExpression
	return CompileExpression(ast), nil
}
