//go:build !scatterdebug

package bssrdf

func assert(bool, string) {}
