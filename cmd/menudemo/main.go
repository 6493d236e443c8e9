// Command menudemo drives examples/menu's device-menu chart from
// characters read off standard input, one tick per character. It is an
// external collaborator outside the engine core: it owns no
// chart-construction logic and only calls into the menu package.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/orvane/tickhsm/examples/menu"
)

func main() {
	m := menu.New()
	m.Init()

	fmt.Fprintln(os.Stderr, "commands: a=about s=settings d=diagnostics 1/2=select b/q=back, x=quit")

	reader := bufio.NewReader(os.Stdin)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		if b == '\n' || b == '\r' {
			continue
		}
		if b == 'x' {
			return
		}
		m.Feed(b)
		fmt.Fprintf(os.Stderr, "-> %s\n", m.SM.Current().Name())
	}
}
