// SPDX-License-Identifier: EPL-2.0

package param

// Channel roles.
const (
	ChannelL   uint16 = 1
	ChannelR   uint16 = 2
	ChannelC   uint16 = 3
	ChannelLS  uint16 = 4
	ChannelRS  uint16 = 5
	ChannelLFE uint16 = 6
	ChannelCS  uint16 = 7
	ChannelCB         = ChannelCS
	ChannelLB  uint16 = 8
	ChannelRB  uint16 = 9
	ChannelTS  uint16 = 10
	ChannelTFC uint16 = 11
	ChannelMS  uint16 = 12
	ChannelFLC uint16 = 13
	ChannelFRC uint16 = 14
	ChannelRLC uint16 = 15
	ChannelRRC uint16 = 16
)

var (
	layout10 = []uint16{ChannelL, ChannelR, ChannelC, ChannelLS, ChannelRS, ChannelLFE, ChannelCS, ChannelLB, ChannelRB, ChannelTS}
	layout12 = append(append([]uint16{}, layout10...), ChannelTFC, ChannelMS)
	layout14 = append(append([]uint16{}, layout12...), ChannelFLC, ChannelFRC)
	layout16 = append(append([]uint16{}, layout14...), ChannelRLC, ChannelRRC)

	layouts = map[int][]uint16{
		1:  {ChannelC},
		2:  {ChannelL, ChannelR},
		3:  {ChannelL, ChannelR, ChannelC},
		4:  {ChannelL, ChannelR, ChannelLB, ChannelRB},
		5:  {ChannelL, ChannelR, ChannelC, ChannelLB, ChannelRB},
		6:  {ChannelL, ChannelR, ChannelC, ChannelLFE, ChannelLB, ChannelRB},
		7:  {ChannelL, ChannelR, ChannelC, ChannelLFE, ChannelLB, ChannelRB, ChannelCS},
		8:  {ChannelL, ChannelR, ChannelC, ChannelLFE, ChannelLB, ChannelRB, ChannelLS, ChannelRS},
		10: layout10,
		12: layout12,
		14: layout14,
		16: layout16,
	}
)

// ChannelMap returns the positional role of each of n channels. Counts
// without a known layout yield n zero roles.
func ChannelMap(n int) []uint16 {
	out := make([]uint16, max(n, 0))
	copy(out, layouts[n])

	return out
}

// SupportedChannelCount reports whether n has a known layout.
func SupportedChannelCount(n int) bool {
	_, ok := layouts[n]
	return ok
}
