//go:build scatterdebug

package bssrdf

func assert(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}
