package ink

// AccessibilityRole classifies a widget for the platform accessibility tree.
type AccessibilityRole uint8

const (
	RoleNone AccessibilityRole = iota
	RoleButton
	RoleCheckbox
	RoleText
	RoleTextInput
	RoleScrollRegion
)

// AccessibilityNode is one widget's report to the accessibility bridge:
// identity, role, solved bounds and a human-readable label. The core only
// collects these tuples; serializing them into a platform tree is the
// bridge's job.
type AccessibilityNode struct {
	ID     WidgetID
	Role   AccessibilityRole
	Bounds Rect
	Label  string
}

// AccessibilityReporter receives the frame's nodes in declaration order at
// EndFrame. A nil reporter disables collection entirely.
type AccessibilityReporter interface {
	ReportNodes(nodes []AccessibilityNode)
}
