package app

import (
	"bufio"
	"fmt"
	"io"
)

const welcomeBanner = `
 ███████╗       ███╗   ███╗ ██╗ ████████╗ ██╗
 ██╔════╝       ████╗ ████║ ██║ ╚══██╔══╝ ██║
 █████╗   █████╗██╔████╔██║ ██║    ██║    ██║
 ██╔══╝   ╚════╝██║╚██╔╝██║ ██║    ██║    ██║
 ███████╗       ██║ ╚═╝ ██║ ██║    ██║    ██║
 ╚══════╝       ╚═╝     ╚═╝ ╚═╝    ╚═╝    ╚═╝
`

// Welcome draws the landing screen and waits for a choice. It reports true
// when the user chose to enter, i.e. the caller should hand off to the main
// program; the landing screen itself never starts or waits on it.
func Welcome(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, welcomeBanner)
	fmt.Fprintln(out, "        Welcome to E-miti")
	fmt.Fprintln(out, "           Negpdo-12")
	fmt.Fprintln(out)
	fmt.Fprintln(out, " Press Enter to start, q to quit.")

	reader := bufio.NewReader(in)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch line {
		case "\n", "\r\n":
			return true
		case "q\n", "q\r\n":
			return false
		}
	}
}
