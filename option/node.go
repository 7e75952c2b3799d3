package option

// Node is one direct child of a selection control: either an *OptionNode or a
// *GroupNode. Sources (an HTML document, a test fixture) produce Nodes; Parse
// consumes them.
type Node interface {
	node()
}

// OptionNode is a plain selectable option as the source control reports it.
type OptionNode struct {
	Text     string
	Value    string
	Selected bool
	Disabled bool
}

// GroupNode is a labeled group of options. Children must be *OptionNode;
// groups inside groups are rejected by Parse.
type GroupNode struct {
	Label    string
	Children []Node
}

func (*OptionNode) node() {}
func (*GroupNode) node()  {}

// Opt is shorthand for building an OptionNode.
func Opt(text, value string) *OptionNode {
	return &OptionNode{Text: text, Value: value}
}

// Group is shorthand for building a GroupNode.
func Group(label string, children ...Node) *GroupNode {
	return &GroupNode{Label: label, Children: children}
}

// WithSelected marks the option as selected and returns it.
func (o *OptionNode) WithSelected() *OptionNode {
	o.Selected = true
	return o
}

// WithDisabled marks the option as disabled and returns it.
func (o *OptionNode) WithDisabled() *OptionNode {
	o.Disabled = true
	return o
}
