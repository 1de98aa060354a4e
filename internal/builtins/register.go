package builtins

// RegisterAll populates r with every standard builtin.
// Host-specific builtins, if any, are registered by the embedder after
// this call returns.
func RegisterAll(r *Registry) {
	RegisterConsole(r)
	RegisterProgram(r)
	RegisterInterpreter(r)
	RegisterNumeric(r)
	RegisterString(r)
}
