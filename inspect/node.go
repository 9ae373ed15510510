package inspect

// Node is one component in the inspection tree.
type Node struct {
	// Type is the component type (e.g. "Grid", "Column", "Box").
	Type string `json:"type"`

	ID string `json:"id,omitempty"`

	// Bounds is the position and size in terminal cells.
	Bounds Bounds `json:"bounds"`

	Visible bool `json:"visible"`

	// State holds component-specific values.
	State map[string]interface{} `json:"state,omitempty"`

	Styles *StyleInfo `json:"styles,omitempty"`

	Children []*Node `json:"children,omitempty"`

	// Content is the rendered label, if any.
	Content string `json:"content,omitempty"`

	// Truncated is set when Content did not fit.
	Truncated *TruncationInfo `json:"truncated,omitempty"`
}

// Bounds represents component position and dimensions.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether the cell (x, y) lies inside b.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// StyleInfo contains styling information for a component.
type StyleInfo struct {
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`

	Bold    bool `json:"bold,omitempty"`
	Reverse bool `json:"reverse,omitempty"`

	Padding []int `json:"padding,omitempty"` // [top, right, bottom, left]

	AppliedStyles []string `json:"applied_styles,omitempty"`
}

// TruncationInfo describes a label cut to fit its box.
type TruncationInfo struct {
	OriginalLength int  `json:"original_length"`
	DisplayLength  int  `json:"display_length"`
	Ellipsis       bool `json:"ellipsis"`
}

// NewNode creates a visible node of the given type.
func NewNode(nodeType string) *Node {
	return &Node{
		Type:    nodeType,
		Visible: true,
		State:   make(map[string]interface{}),
	}
}

// WithID sets the node ID and returns the node for chaining.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithBounds sets the node bounds and returns the node for chaining.
func (n *Node) WithBounds(b Bounds) *Node {
	n.Bounds = b
	return n
}

// WithState adds a state key-value pair and returns the node for chaining.
func (n *Node) WithState(key string, value interface{}) *Node {
	if n.State == nil {
		n.State = make(map[string]interface{})
	}
	n.State[key] = value
	return n
}

// WithStyles sets the node styles and returns the node for chaining.
func (n *Node) WithStyles(styles *StyleInfo) *Node {
	n.Styles = styles
	return n
}

// AddChild adds a child node and returns the parent for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// WithContent sets the node content and returns the node for chaining.
func (n *Node) WithContent(content string) *Node {
	n.Content = content
	return n
}

// WithTruncation records that content of length original was displayed in
// displayed cells.
func (n *Node) WithTruncation(original, displayed int, hasEllipsis bool) *Node {
	n.Truncated = &TruncationInfo{
		OriginalLength: original,
		DisplayLength:  displayed,
		Ellipsis:       hasEllipsis,
	}
	return n
}

// Find returns the first node in the tree, depth first, matching type and id.
func (n *Node) Find(nodeType, id string) *Node {
	if n == nil {
		return nil
	}
	if n.Type == nodeType && n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(nodeType, id); found != nil {
			return found
		}
	}
	return nil
}
