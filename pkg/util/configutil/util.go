package configutil

// SetDefault abstracts setting Viper defaults.
type SetDefault interface {
	SetDefault(key string, value any)
}

// SetDefaultFunc implements SetDefault. A nil func drops every default.
type SetDefaultFunc func(key string, value any)

func (f SetDefaultFunc) SetDefault(key string, value any) {
	if f == nil {
		return
	}
	f(key, value)
}

// Section returns a SetDefault that prefixes every key with section
// and a dot, so a config section can set its defaults by relative keys.
func Section(section string, to SetDefault) SetDefault {
	return SetDefaultFunc(func(key string, value any) {
		to.SetDefault(section+"."+key, value)
	})
}
