//go:build !scatterdebug

package spectrum

func assert(bool, string) {}
