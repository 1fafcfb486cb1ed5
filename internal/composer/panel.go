package composer

// Panel identifies one toolbar dropdown. At most one panel is open at a time.
type Panel int

// Toolbar panels.
const (
	PanelNone Panel = iota
	PanelBackground
	PanelFont
	PanelTextColor
	PanelBorder
	PanelLink
	PanelSkillColor
	PanelAlign
	PanelSpacing
	PanelSections
)

var panelNames = map[Panel]string{
	PanelNone:       "none",
	PanelBackground: "background",
	PanelFont:       "font",
	PanelTextColor:  "textColor",
	PanelBorder:     "border",
	PanelLink:       "link",
	PanelSkillColor: "skillColor",
	PanelAlign:      "align",
	PanelSpacing:    "spacing",
	PanelSections:   "sections",
}

func (p Panel) String() string {
	if name, ok := panelNames[p]; ok {
		return name
	}
	return "unknown"
}

// Panel returns the open panel, or PanelNone.
func (c *Composer) Panel() Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel
}

// TogglePanel opens p, closing whichever panel was open, or closes p if it
// is already open. It returns the panel open afterwards.
func (c *Composer) TogglePanel(p Panel) Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.panel == p {
		c.panel = PanelNone
	} else {
		c.panel = p
	}
	return c.panel
}

// ClosePanel closes any open panel.
func (c *Composer) ClosePanel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panel = PanelNone
}
