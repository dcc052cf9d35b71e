package domain

type Theme string

const (
	ThemeGreen  Theme = "green"
	ThemeBlue   Theme = "blue"
	ThemeOrange Theme = "orange"
	ThemeBlack  Theme = "black"
)

// ParseTheme matches the known names exactly and falls back to green for
// anything else, including other casings.
func ParseTheme(name string) Theme {
	switch Theme(name) {
	case ThemeBlue:
		return ThemeBlue
	case ThemeOrange:
		return ThemeOrange
	case ThemeBlack:
		return ThemeBlack
	default:
		return ThemeGreen
	}
}

type Settings struct {
	Theme      Theme  `json:"theme"`
	Sound      bool   `json:"sound"`
	Vibration  bool   `json:"vibration"`
	AutoScan   bool   `json:"autoScan"`
	ShopName   string `json:"shopName"`
	ShopPhone  string `json:"shopPhone"`
	ShopThanks string `json:"shopThanks"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:      ThemeGreen,
		Sound:      true,
		Vibration:  true,
		AutoScan:   true,
		ShopName:   "Smart POS",
		ShopPhone:  "",
		ShopThanks: "Thank you!",
	}
}

// SettingsPatch updates only the non-nil fields.
type SettingsPatch struct {
	Sound      *bool   `json:"sound,omitempty"`
	Vibration  *bool   `json:"vibration,omitempty"`
	AutoScan   *bool   `json:"autoScan,omitempty"`
	ShopName   *string `json:"shopName,omitempty"`
	ShopPhone  *string `json:"shopPhone,omitempty"`
	ShopThanks *string `json:"shopThanks,omitempty"`
}

func (s Settings) Apply(p SettingsPatch) Settings {
	if p.Sound != nil {
		s.Sound = *p.Sound
	}
	if p.Vibration != nil {
		s.Vibration = *p.Vibration
	}
	if p.AutoScan != nil {
		s.AutoScan = *p.AutoScan
	}
	if p.ShopName != nil {
		s.ShopName = *p.ShopName
	}
	if p.ShopPhone != nil {
		s.ShopPhone = *p.ShopPhone
	}
	if p.ShopThanks != nil {
		s.ShopThanks = *p.ShopThanks
	}
	return s
}
