package oled

// Region is a rectangular transfer window in panel coordinates: columns
// StartCol..EndCol and pages StartPage..EndPage, inclusive.
type Region struct {
	StartCol  uint8
	EndCol    uint8
	StartPage uint8
	EndPage   uint8
	BufLen    int
}

// FullScreen returns the region covering the whole panel. BufLen is left
// zero; call CalcBufLen before use.
func FullScreen() Region {
	return Region{
		StartCol:  0,
		EndCol:    Width - 1,
		StartPage: 0,
		EndPage:   Pages - 1,
	}
}

// CalcBufLen sets BufLen to the number of bytes the region spans.
func (r *Region) CalcBufLen() {
	r.BufLen = (int(r.EndCol) - int(r.StartCol) + 1) * (int(r.EndPage) - int(r.StartPage) + 1)
}

// IsFullScreen reports whether r covers the whole panel.
func (r Region) IsFullScreen() bool {
	return r.StartCol == 0 && r.EndCol == Width-1 && r.StartPage == 0 && r.EndPage == Pages-1
}
