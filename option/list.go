// Package option models the options of a single-selection control as a flat,
// ordered list. Group membership survives the flattening through GroupIndex,
// which lets a renderer rebuild group boundaries without nesting the model.
package option

// Ungrouped is the GroupIndex carried by items that sit outside any group.
const Ungrouped = -1

// Item is one selectable entry parsed from the source control.
type Item struct {
	Text     string
	Value    string
	Selected bool
	Disabled bool

	// Group is true iff the item was sourced from inside a group. Label is the
	// owning group's label and is only meaningful when Group is true.
	Group      bool
	Label      string
	GroupIndex int
}

// List is the parsed option sequence of one control.
// It is built once by Parse and mutated only by UpdateSelected.
type List struct {
	items    []Item
	selected int // index into items, -1 when nothing is selected
	groups   int
}

// Parse flattens the direct children of a selection control into a List.
//
// Each group increments a counter starting at 1 and stamps it on its options;
// plain options get Ungrouped. When several options report Selected, every
// one keeps its flag but the last one in source order becomes the List's
// canonical selection, as a single-selection control would resolve it.
func Parse(nodes []Node) (*List, error) {
	l := &List{
		items:    make([]Item, 0, len(nodes)),
		selected: -1,
	}

	for i, n := range nodes {
		switch n := n.(type) {
		case *OptionNode:
			if n == nil {
				return nil, &ParseError{Index: i, Child: -1, Err: ErrNilNode}
			}
			l.add(n, false, "", Ungrouped)
		case *GroupNode:
			if n == nil {
				return nil, &ParseError{Index: i, Child: -1, Err: ErrNilNode}
			}
			if err := l.addGroup(i, n); err != nil {
				return nil, err
			}
		default:
			return nil, &ParseError{Index: i, Child: -1, Err: ErrNilNode}
		}
	}

	return l, nil
}

func (l *List) addGroup(index int, g *GroupNode) error {
	l.groups++
	for j, child := range g.Children {
		switch c := child.(type) {
		case *OptionNode:
			if c == nil {
				return &ParseError{Index: index, Child: j, Err: ErrNilNode}
			}
			l.add(c, true, g.Label, l.groups)
		case *GroupNode:
			return &ParseError{Index: index, Child: j, Err: ErrNestedGroup}
		default:
			return &ParseError{Index: index, Child: j, Err: ErrNilNode}
		}
	}
	return nil
}

func (l *List) add(n *OptionNode, group bool, label string, groupIndex int) {
	l.items = append(l.items, Item{
		Text:       n.Text,
		Value:      n.Value,
		Selected:   n.Selected,
		Disabled:   n.Disabled,
		Group:      group,
		Label:      label,
		GroupIndex: groupIndex,
	})
	if n.Selected {
		l.selected = len(l.items) - 1
	}
}

// UpdateSelected marks every item whose value equals value as selected and
// clears every other item. The canonical selection moves to the last match;
// with no match nothing is selected. It returns the number of matches.
func (l *List) UpdateSelected(value string) int {
	matched := 0
	l.selected = -1
	for i := range l.items {
		l.items[i].Selected = l.items[i].Value == value
		if l.items[i].Selected {
			matched++
			l.selected = i
		}
	}
	return matched
}

// Items returns a copy of the parsed items in source order.
func (l *List) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Each calls fn for every item in source order without copying the list.
func (l *List) Each(fn func(i int, item Item)) {
	for i, it := range l.items {
		fn(i, it)
	}
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.items)
}

// Groups returns how many group runs were parsed.
func (l *List) Groups() int {
	return l.groups
}

// Selected returns the canonical selected item.
func (l *List) Selected() (Item, bool) {
	if l.selected < 0 {
		return Item{}, false
	}
	return l.items[l.selected], true
}

// SelectedIndex returns the index of the canonical selected item, or -1.
func (l *List) SelectedIndex() int {
	return l.selected
}

// Lookup returns the first item carrying value.
func (l *List) Lookup(value string) (Item, bool) {
	for _, it := range l.items {
		if it.Value == value {
			return it, true
		}
	}
	return Item{}, false
}
