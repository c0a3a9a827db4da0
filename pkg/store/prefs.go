package store

import "context"

// Theme names persisted under the theme preference key.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Prefs persists view and theme preferences under fixed keys.
type Prefs struct {
	store Store
}

// NewPrefs creates a preference view over the given store.
func NewPrefs(s Store) *Prefs {
	return &Prefs{store: s}
}

// View returns the persisted view mode for a resource, or fallback when
// none has been saved.
func (p *Prefs) View(ctx context.Context, resource, fallback string) string {
	view, err := p.store.Get(ctx, Key("prefs", "view", resource))
	if err != nil {
		return fallback
	}
	return view
}

// SetView persists the view mode for a resource.
func (p *Prefs) SetView(ctx context.Context, resource, view string) error {
	return p.store.Set(ctx, Key("prefs", "view", resource), view)
}

// Theme returns the persisted theme, defaulting to light.
func (p *Prefs) Theme(ctx context.Context) string {
	theme, err := p.store.Get(ctx, Key("prefs", "theme"))
	if err != nil {
		return ThemeLight
	}
	return theme
}

// SetTheme persists the theme.
func (p *Prefs) SetTheme(ctx context.Context, theme string) error {
	return p.store.Set(ctx, Key("prefs", "theme"), theme)
}
