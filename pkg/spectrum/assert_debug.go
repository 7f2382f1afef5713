//go:build scatterdebug

package spectrum

func assert(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}
