package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown when the interactive
// editor starts.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Copper-to-green gradient, the colors of a populated board.
	s1 := termenv.String("  _                        _ _                         _ ").Foreground(p.Color("#fbbf24"))
	s2 := termenv.String(" | |__  _ __ ___  __ _  __| | |__   ___   __ _ _ __ __| |").Foreground(p.Color("#f59e0b"))
	s3 := termenv.String(" | '_ \\| '__/ _ \\/ _` |/ _` | '_ \\ / _ \\ / _` | '__/ _` |").Foreground(p.Color("#a3e635"))
	s4 := termenv.String(" | |_) | | |  __/ (_| | (_| | |_) | (_) | (_| | | | (_| |").Foreground(p.Color("#4ade80"))
	s5 := termenv.String(" |_.__/|_|  \\___|\\__,_|\\__,_|_.__/ \\___/ \\__,_|_|  \\__,_|").Foreground(p.Color("#34d399"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
