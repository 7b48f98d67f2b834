package models

// Theme is a named visual theme from the fixed set the clients render.
// ThemeSystem is special: it is stored as-is and resolved against the OS
// color-scheme signal at apply time, never persisted resolved.
type Theme string

const (
	ThemeCinema    Theme = "cinema"
	ThemeCyberpunk Theme = "cyberpunk"
	ThemeMinimal   Theme = "minimal"
	ThemeVercel    Theme = "vercel"
	ThemeTwitter   Theme = "twitter"
	ThemeRetro     Theme = "retro"
	ThemeNature    Theme = "nature"
	ThemeOcean     Theme = "ocean"
	ThemeSunset    Theme = "sunset"
	ThemeDracula   Theme = "dracula"
	ThemePastel    Theme = "pastel"
	ThemeSystem    Theme = "system"

	DefaultTheme = ThemeCinema
)

var knownThemes = map[Theme]struct{}{
	ThemeCinema: {}, ThemeCyberpunk: {}, ThemeMinimal: {}, ThemeVercel: {},
	ThemeTwitter: {}, ThemeRetro: {}, ThemeNature: {}, ThemeOcean: {},
	ThemeSunset: {}, ThemeDracula: {}, ThemePastel: {}, ThemeSystem: {},
}

// Valid reports whether the theme belongs to the closed set.
func (t Theme) Valid() bool {
	_, ok := knownThemes[t]
	return ok
}

// Resolve maps ThemeSystem to a concrete theme using the OS dark-mode
// signal. Concrete themes resolve to themselves.
func (t Theme) Resolve(systemPrefersDark bool) Theme {
	if t != ThemeSystem {
		return t
	}
	if systemPrefersDark {
		return ThemeCinema
	}
	return ThemeMinimal
}

// Font is a named typeface from the fixed set the clients ship.
type Font string

const (
	FontInter        Font = "inter"
	FontRoboto       Font = "roboto"
	FontOpenSans     Font = "open-sans"
	FontLato         Font = "lato"
	FontMontserrat   Font = "montserrat"
	FontNunito       Font = "nunito"
	FontPoppins      Font = "poppins"
	FontRaleway      Font = "raleway"
	FontSourceSans   Font = "source-sans-3"
	FontUbuntu       Font = "ubuntu"
	FontPlayfair     Font = "playfair"
	FontSpaceGrotesk Font = "space-grotesk"

	DefaultFont = FontInter
)

var knownFonts = map[Font]struct{}{
	FontInter: {}, FontRoboto: {}, FontOpenSans: {}, FontLato: {},
	FontMontserrat: {}, FontNunito: {}, FontPoppins: {}, FontRaleway: {},
	FontSourceSans: {}, FontUbuntu: {}, FontPlayfair: {}, FontSpaceGrotesk: {},
}

// Valid reports whether the font belongs to the closed set.
func (f Font) Valid() bool {
	_, ok := knownFonts[f]
	return ok
}

// Preferences holds the per-installation display preferences.
type Preferences struct {
	Theme Theme `json:"theme"`
	Font  Font  `json:"font"`
}

// DefaultPreferences returns the out-of-the-box preference values.
func DefaultPreferences() Preferences {
	return Preferences{Theme: DefaultTheme, Font: DefaultFont}
}
