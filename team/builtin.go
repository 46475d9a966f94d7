package team

// builtin is the stock club list shipped with the binary
var builtin = []Descriptor{
	{Key: "KC", Name: "Kansas City Chiefs", Primary: RGB(0xE31837), Secondary: RGB(0xFFB81C)},
	{Key: "SF", Name: "San Francisco 49ers", Primary: RGB(0xAA0000), Secondary: RGB(0xB3995D)},
	{Key: "PHI", Name: "Philadelphia Eagles", Primary: RGB(0x004C54), Secondary: RGB(0xA5ACAF)},
	{Key: "DAL", Name: "Dallas Cowboys", Primary: RGB(0x003594), Secondary: RGB(0x869397)},
	{Key: "BUF", Name: "Buffalo Bills", Primary: RGB(0x00338D), Secondary: RGB(0xC60C30)},
	{Key: "GB", Name: "Green Bay Packers", Primary: RGB(0x203731), Secondary: RGB(0xFFB612)},
}

// Default returns the built-in registry
func Default() *Registry {
	r, err := NewRegistry(builtin...)
	if err != nil {
		// Built-in table is static; failure is a programming error
		panic(err)
	}
	return r
}
