// Package example demonstrates documentation rendering for refmd tests.
//
// See #Greeter for the main type.
package example

const (
	// Answer documents an exported constant.
	Answer = 42

	// hidden constant should be available with -u.
	internalConstant = 0
)

// Greeter produces greeting messages.
//
// # Attributes
// Name (string): who to greet.
type Greeter struct {
	Name string
}

// NewGreeter constructs a Greeter.
//
// # Parameters
// name (string): the name to greet.
//
// # Returns
// *Greeter: a ready greeter.
func NewGreeter(name string) *Greeter {
	return &Greeter{Name: name}
}

// Greet returns a friendly message.
//
// :returns: the greeting, see #Greeter.Name.
func (g *Greeter) Greet() string {
	return "hello " + g.Name
}

// Shout greets loudly.
func Shout(g *Greeter) string {
	return g.Greet() + "!"
}
